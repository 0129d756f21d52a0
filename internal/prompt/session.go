// Package prompt runs the line-oriented operator dialogue that builds a remap
// table.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/setanarut/recolor"
	"github.com/setanarut/recolor/utils"
	"go.uber.org/zap"
)

type Mode string

const (
	// ModeAll walks every labeled color.
	ModeAll Mode = "all"
	// ModeSingle remaps one color chosen by label.
	ModeSingle Mode = "single"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAll, ModeSingle:
		return m, nil
	case "":
		return ModeAll, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeAll, ModeSingle)
}

type Session struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger
}

func NewSession(in io.Reader, out, errOut io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		logger: logger,
	}
}

// Ask prints prompt and returns the trimmed reply. End of input reads as an
// empty reply.
func (s *Session) Ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) AskPath() (string, error) {
	path, err := s.Ask("Enter path of file: ")
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New("no input file given")
	}
	return path, nil
}

func (s *Session) AskOutputName() (string, error) {
	name, err := s.Ask("\nEnter filename for modified file: ")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.New("no output filename given")
	}
	return name, nil
}

// Remap fills a table for palette according to mode.
func (s *Session) Remap(mode Mode, palette []recolor.LabeledColor) (recolor.Table, error) {
	t := recolor.IdentityTable(palette)
	var err error
	switch mode {
	case ModeSingle:
		err = s.remapOne(palette, t)
	default:
		err = s.remapAll(palette, t)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Session) remapAll(palette []recolor.LabeledColor, t recolor.Table) error {
	for _, lc := range palette {
		if err := s.askReplacement(lc, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) remapOne(palette []recolor.LabeledColor, t recolor.Table) error {
	fmt.Fprintln(s.out, "\nLabels:")
	for i, lc := range palette {
		fmt.Fprintf(s.out, "  %d. %s %s\n", i, lc.Label, utils.FormatColor(lc.Color))
	}
	for {
		name, err := s.Ask("Enter label to remap, or leave blank to cancel: ")
		if err != nil {
			return err
		}
		if name == "" {
			s.logger.Debug("single remap cancelled")
			return nil
		}
		lc, err := recolor.FindLabel(palette, name)
		if err != nil {
			fmt.Fprintf(s.errOut, "No label named %q.\n", name)
			continue
		}
		return s.askReplacement(lc, t)
	}
}

func (s *Session) askReplacement(lc recolor.LabeledColor, t recolor.Table) error {
	c := lc.Color
	fmt.Fprintf(s.out, "\n%s: (%d, %d, %d, %d)\n", lc.Label, c.R, c.G, c.B, c.A)
	reply, err := s.Ask("Enter new RGBA for this label, or leave blank to skip: ")
	if err != nil {
		return err
	}
	if reply == "" {
		t[lc.Color] = lc.Color
		return nil
	}
	c, err = recolor.ParseRGBA(reply)
	if err != nil {
		fmt.Fprintln(s.errOut, "Invalid input, keeping original.")
		s.logger.Debug("rejected replacement", zap.String("label", lc.Label), zap.Error(err))
		t[lc.Color] = lc.Color
		return nil
	}
	t[lc.Color] = c
	s.logger.Debug("remapped color",
		zap.String("label", lc.Label),
		zap.String("from", utils.FormatColor(lc.Color)),
		zap.String("to", utils.FormatColor(c)))
	return nil
}
