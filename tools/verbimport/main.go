// Command verbimport builds grammar dataset YAML from spreadsheet and JSON
// verb lists. It reads .xlsx and .json inputs, merges and validates the
// records, and writes a dataset file that the server loads at startup.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

type runnerConfig struct {
	Check  bool
	Write  bool
	Strict bool
	Out    string
	Sheet  string
}

type runResult struct {
	BatchID  string
	Inputs   int
	Read     int
	Merged   int
	Dropped  int
	Rejects  []reject
	OutPath  string
	Wrote    bool
	Duration time.Duration
}

type reject struct {
	Source string
	Reason string
}

func main() {
	var cfg runnerConfig

	root := &cobra.Command{
		Use:   "verbimport [files or directories]",
		Short: "Import verb datasets from xlsx/json into grammar YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := run(cfg, args)
			printSummary(result, err)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVar(&cfg.Check, "check", false, "validate only without writing")
	root.Flags().BoolVar(&cfg.Write, "write", false, "write the merged dataset")
	root.Flags().BoolVar(&cfg.Strict, "strict", false, "fail when any record is rejected")
	root.Flags().StringVar(&cfg.Out, "out", "verbs.yaml", "output dataset path")
	root.Flags().StringVar(&cfg.Sheet, "sheet", "Sheet1", "worksheet to read from xlsx inputs")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg runnerConfig, args []string) (runResult, error) {
	start := time.Now()
	result := runResult{
		BatchID: ksuid.New().String(),
		OutPath: cfg.Out,
		Inputs:  len(args),
	}

	if cfg.Check && cfg.Write {
		return result, fmt.Errorf("--check and --write cannot be combined")
	}

	records, rejects, err := readInputs(args, cfg.Sheet)
	if err != nil {
		return result, err
	}
	result.Read = len(records)
	result.Rejects = rejects

	merged, validationRejects := mergeAndValidate(records)
	result.Rejects = append(result.Rejects, validationRejects...)
	result.Merged = len(merged)
	result.Dropped = result.Read - result.Merged
	result.Duration = time.Since(start)

	if cfg.Strict && len(result.Rejects) > 0 {
		return result, fmt.Errorf("strict mode: %d rejected records", len(result.Rejects))
	}
	if len(merged) == 0 {
		return result, fmt.Errorf("no usable verb records in %d inputs", len(args))
	}

	if cfg.Write && !cfg.Check {
		if err := writeDataset(cfg.Out, merged); err != nil {
			return result, err
		}
		result.Wrote = true
	}
	result.Duration = time.Since(start)
	return result, nil
}

func printSummary(result runResult, runErr error) {
	color.New(color.FgHiCyan).Printf("batch %s: %d inputs, %d records read\n",
		result.BatchID, result.Inputs, result.Read)
	color.New(color.FgGreen).Printf("merged %d verbs (%d dropped) in %s\n",
		result.Merged, result.Dropped, result.Duration.Round(time.Millisecond))

	for _, r := range result.Rejects {
		color.New(color.FgYellow).Printf("reject %s: %s\n", r.Source, r.Reason)
	}

	switch {
	case runErr != nil:
		color.New(color.FgHiRed).Printf("error: %v\n", runErr)
	case result.Wrote:
		color.New(color.FgGreen).Printf("wrote %s\n", result.OutPath)
	default:
		color.New(color.FgWhite).Println("dry run, use --write to save")
	}
}
