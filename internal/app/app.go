package app

import (
	"fmt"
	"io"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/imgmanip/imgmanip/configs"
	"github.com/imgmanip/imgmanip/internal/output"
	"github.com/imgmanip/imgmanip/pkg/img"
)

// DefaultConfigPath is the configuration file read when none
// is given. It doesn't need to exist.
const DefaultConfigPath = "imgmanip.toml"

type rootFlags struct {
	configPath string
	logLevel   string
	outputDir  string
	format     string
}

// NewRootCommand returns the application's command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "imgmanip",
		Short:         "Apply pixel transforms to an image",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return appPersistentPreRun(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(
		&flags.configPath, "config", "c",
		"", "Configuration file",
	)
	rootCmd.PersistentFlags().StringVarP(
		&flags.logLevel, "level", "l",
		configs.Config.Main.LogLevel, "Log level",
	)
	rootCmd.PersistentFlags().StringVarP(
		&flags.outputDir, "output", "o",
		configs.Config.Images.OutputDir, "Output directory",
	)
	rootCmd.PersistentFlags().StringVarP(
		&flags.format, "format", "f",
		configs.Config.Images.Format, "Output format",
	)

	for _, name := range img.Operations() {
		if name == img.Original.Name {
			continue
		}
		rootCmd.AddCommand(newOperationCmd(name))
	}
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func appPersistentPreRun(cmd *cobra.Command, flags *rootFlags) error {
	configPath := flags.configPath
	mustExist := configPath != ""
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	if err := configs.LoadConfiguration(configPath, mustExist); err != nil {
		return fmt.Errorf("error loading configuration (%s)", err)
	}

	// Flags win over the configuration file
	pf := cmd.Flags()
	if pf.Changed("level") {
		configs.Config.Main.LogLevel = flags.logLevel
	}
	if pf.Changed("output") {
		configs.Config.Images.OutputDir = flags.outputDir
	}
	if pf.Changed("format") {
		configs.Config.Images.Format = flags.format
	}

	if err := configs.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Enforce debug in dev mode
	if configs.Config.Main.DevMode {
		configs.Config.Main.LogLevel = "debug"
	}

	setupLogger(cmd.ErrOrStderr())
	img.MaxPixels = configs.Config.Images.MaxPixels

	return nil
}

func setupLogger(out io.Writer) {
	lvl, err := log.ParseLevel(configs.Config.Main.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	if configs.Config.Main.DevMode && out == os.Stderr {
		out = colorable.NewColorableStderr()
	}

	// Both loggers write to the same output
	w := &syncWriter{w: out}
	log.SetLevel(lvl)
	log.SetOutput(w)
	log.WithField("log_level", lvl).Debug()
	if configs.Config.Main.DevMode {
		log.SetFormatter(&log.TextFormatter{
			ForceColors: true,
		})
		log.SetLevel(log.TraceLevel)
	}

	opLogger.SetOutput(w)
	opLogger.SetLevel(log.GetLevel())
}

func newPresenter(source string) (*output.FilePresenter, error) {
	return output.NewFilePresenter(
		configs.Config.Images.OutputDir,
		source,
		configs.Config.Images.Format,
		configs.Config.Images.Quality,
		configs.Config.Images.NameTemplate,
	)
}

func validateThreshold(threshold int) error {
	if err := validation.Validate(threshold, configs.ThresholdRules...); err != nil {
		return fmt.Errorf("threshold: %w", err)
	}
	return nil
}

// Run starts the application
func Run() error {
	return NewRootCommand().Execute()
}
