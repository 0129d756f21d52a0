package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/setanarut/recolor"
	"github.com/setanarut/recolor/internal/log"
	"github.com/setanarut/recolor/internal/prompt"
	"github.com/setanarut/recolor/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runRecolor(cmd *cobra.Command, args []string) error {
	if outputName != "" && len(args) > 1 {
		return errors.New("--output can only be used with a single input image")
	}
	r := &runner{
		config:  config,
		session: prompt.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), log.Logger()),
		out:     cmd.OutOrStdout(),
		output:  outputName,
	}
	if planFile != "" {
		plan, err := recolor.LoadPlan(planFile)
		if err != nil {
			return err
		}
		r.plan = plan
	}

	if len(args) == 0 {
		path, err := r.session.AskPath()
		if err != nil {
			return err
		}
		args = []string{path}
	}
	for _, path := range args {
		if err := r.process(path); err != nil {
			return err
		}
	}
	return nil
}

// runner recolors one image after another with shared settings.
type runner struct {
	config  *Config
	session *prompt.Session
	out     io.Writer
	plan    *recolor.Plan
	output  string
}

func (r *runner) process(path string) error {
	img, err := utils.ReadImage(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	fmt.Fprintln(r.out, "Image loaded successfully.")

	rc := recolor.NewRecolorer(img)
	rc.Labels = r.config.Labels
	rc.Build()
	log.Info("palette extracted", zap.String("path", path), zap.Int("colors", len(rc.Palette)))

	table, err := r.table(rc.Palette)
	if err != nil {
		return err
	}
	out := rc.Remap(table)

	name := r.output
	if name == "" {
		if name, err = r.session.AskOutputName(); err != nil {
			return err
		}
	}
	savePath := utils.OutputPath(path, name)
	if err := utils.SaveImage(out, savePath); err != nil {
		return fmt.Errorf("failed to save output image: %w", err)
	}
	fmt.Fprintf(r.out, "Image saved as: %s\n", savePath)
	log.Info("image saved", zap.String("path", savePath), zap.Int("changed", table.Changed()))

	if r.config.Swatch {
		swatch := utils.SwatchPath(savePath)
		if err := utils.SavePalette(rc.Palette, table, 32, swatch); err != nil {
			return fmt.Errorf("failed to save palette swatch: %w", err)
		}
		fmt.Fprintf(r.out, "Palette saved as: %s\n", swatch)
	}
	return nil
}

func (r *runner) table(palette []recolor.LabeledColor) (recolor.Table, error) {
	if r.plan != nil {
		return r.plan.Table(palette)
	}
	mode, err := prompt.ParseMode(r.config.Mode)
	if err != nil {
		return nil, err
	}
	return r.session.Remap(mode, palette)
}
