package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yurifrl/termsheet/pkg/config"
	"github.com/yurifrl/termsheet/pkg/executors"
	"github.com/yurifrl/termsheet/pkg/plan"
	"github.com/yurifrl/termsheet/pkg/service"
)

var (
	cliFilters filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:   "termsheet",
	Short: "Extract term sheet fields from documents into spreadsheets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

// setup loads the configuration and builds the logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "termsheet",
		Level:           cfg.Level(),
	})
	return cfg, logger, nil
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input_path>",
	Short: "Convert term sheet documents to Excel (or CSV on stdout)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		dump, _ := cmd.Flags().GetBool("dump")
		processor := NewFileProcessor(logger, cfg, &cliFilters, dump, os.Stdout)

		inputPath := args[0]
		matches, err := filepath.Glob(inputPath)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", inputPath)
		}

		for _, match := range matches {
			fileInfo, err := os.Stat(match)
			if err != nil {
				logger.Warn("failed to stat file", "error", err, "file", match)
				continue
			}

			if fileInfo.IsDir() {
				if err := processor.ProcessDirectory(match); err != nil {
					logger.Warn("failed to process directory", "error", err, "dir", match)
				}
			} else {
				if err := processor.ProcessFile(match); err != nil {
					logger.Warn("failed to process file", "error", err, "file", match)
				}
			}
		}
		return nil
	},
}

// loadPlan builds an executor for the plan at path.
func loadPlan(cmd *cobra.Command, path string) (*plan.Plan, *executors.Executor, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}

	p, err := plan.Load(path)
	if err != nil {
		return nil, nil, err
	}

	exec := executors.New(logger, service.NewProcessor(cfg, logger), os.Stdout)
	return p, exec, nil
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Preview a YAML plan of documents (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, exec, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Plan preview for %s\n", args[0])
		p.Print()
		fmt.Println()
		exec.Plan(p)
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <plan_file>",
	Short: "Convert every document of a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, exec, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}

		report := exec.Apply(p)
		if report.Failed() > 0 {
			return fmt.Errorf("%d of %d document(s) failed", report.Failed(), len(report.Results))
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is termsheet.yaml)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write the Debug_Log sheet")
	rootCmd.PersistentFlags().String("processing-date", "", "Processing date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringP("output-dir", "o", "", "Output directory (default is beside the input)")

	// Flags specific to the convert subcommand
	convertCmd.Flags().String("format", config.DefaultFormat, "Output format: xlsx or csv")
	convertCmd.Flags().String("append-to", "", "Append results as rows of this workbook")
	convertCmd.Flags().Bool("dump", false, "Pretty-print the extracted fields instead of writing output")
	convertCmd.Flags().StringVar(&cliFilters.match, "match", "", "Only print fields whose key contains this text (csv)")
	convertCmd.Flags().BoolVar(&cliFilters.skipPresent, "skip-present", false, "Skip fields without a value (csv)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
