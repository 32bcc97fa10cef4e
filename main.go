package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nconklindev/ifprofile/internal/config"
	"github.com/nconklindev/ifprofile/internal/converter"
	"github.com/nconklindev/ifprofile/internal/logging"
	"github.com/nconklindev/ifprofile/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ifprofile [folder]",
	Short: "Export interface profiles from Excel workbooks to CSV",
	Long: `ifprofile reads every workbook in a folder and writes <workbook>.csv with the
columns int-profile-name, int-selector-name, from-port-number, to-port-number
and int-policy-group.

Run without arguments to be prompted for the folder.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("ifprofile %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log at debug level")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := converter.OptionsFromConfig(cfg, logger)

	if len(args) == 1 {
		return runBatch(cmd, args[0], opts)
	}

	p := tea.NewProgram(ui.InitialModel(cfg, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(ui.Model)
	if m.Aborted() {
		logger.Info("aborted at prompt")
		return ui.ErrAborted
	}
	if m.Err() != nil {
		return m.Err()
	}
	if m.Summary() != nil {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(m.Summary(), 0))
	}
	return nil
}

func runBatch(cmd *cobra.Command, folder string, opts converter.Options) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("cannot find the path %q", folder)
	}

	summary, err := converter.ConvertFolder(folder, opts, nil)
	if err != nil {
		opts.Logger.Error("report generation failed", zap.String("folder", folder), zap.Error(err))
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(summary, 0))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ui.ErrAborted) {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Report Generation Failed ..."))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
