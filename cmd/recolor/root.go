package main

import (
	"fmt"
	"os"

	"github.com/setanarut/recolor/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	outputName string
	planFile   string
	config     *Config
	v          = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "recolor [image...]",
	Short: "Remap the colors of small-palette images",
	Long: `recolor lists the distinct colors of an image from brightest to darkest,
labels them (Background White, Highlight Bright, ... Outline, Black) and lets you
replace any of them with new RGBA values. With no arguments it asks for a file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = log.Sync() },
	RunE:              runRecolor,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./recolor.yaml or $XDG_CONFIG_HOME/recolor/recolor.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	rootCmd.Flags().StringP("mode", "m", "all", "Remap mode: all (walk every color) or single (pick one label)")
	rootCmd.Flags().Bool("swatch", false, "Also write a before/after palette strip next to each output")
	rootCmd.Flags().StringVarP(&outputName, "output", "o", "", "Output filename, written next to the input (single input only)")
	rootCmd.Flags().StringVar(&planFile, "map", "", "YAML remap plan; replaces the interactive prompts")

	_ = v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = v.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	_ = v.BindPFlag("swatch", rootCmd.Flags().Lookup("swatch"))

	rootCmd.AddCommand(paletteCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	config, err = LoadConfig(v, cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := log.New(config.Logging.Level, config.Logging.Format)
	if err != nil {
		return err
	}
	log.SetLogger(logger)
	return nil
}
