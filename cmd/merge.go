package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"table-steward/core/merge"
	"table-steward/core/scan"
	"table-steward/feature/tables"

	"github.com/spf13/cobra"
)

var (
	mergePrimaryKeys []string
	mergeBaseline    []string
	mergeIncremental bool
	mergeNoScan      bool
	mergeOutput      string
)

// mergeCmd performs a one-shot merge and scan over local files.
var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Merge local CSV/XLSX files and scan the result",
	Long: `Merge two or more tabular files against the first file's columns and run
the health scan over the merged table. The result is printed as JSON.

Data-quality findings never fail the command; they are part of the report.
The command fails only when no usable input is given or the first file is
unreadable or has duplicate column names.

Examples:
  # Stack files sharing a schema
  table-steward merge a.csv b.csv c.xlsx

  # Left-join onto the first file by a composite key
  table-steward merge roster.csv scores.csv --primary-key Name --primary-key Class

  # Union newly discovered columns into the baseline
  table-steward merge a.csv b.csv --incremental -o result.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringArrayVar(&mergePrimaryKeys, "primary-key", nil, "Primary key column (repeatable; switches to key-joined strategy)")
	mergeCmd.Flags().StringArrayVar(&mergeBaseline, "baseline", nil, "Baseline column override (repeatable)")
	mergeCmd.Flags().BoolVar(&mergeIncremental, "incremental", false, "Union newly discovered columns into the baseline")
	mergeCmd.Flags().BoolVar(&mergeNoScan, "no-scan", false, "Skip the health scan and report the merge only")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the JSON result to a file instead of stdout")

	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	paths := append([]string(nil), args...)
	sort.Slice(paths, func(i, j int) bool {
		return filepath.Base(paths[i]) < filepath.Base(paths[j])
	})

	files := make([]merge.File, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			// Recorded on the report like any other unreadable file.
			files = append(files, merge.File{Name: filepath.Base(p), ReadErr: err})
			continue
		}
		files = append(files, merge.FileFromBytes(filepath.Base(p), content))
	}

	opts := merge.Options{
		BaselineColumns:   mergeBaseline,
		PrimaryKeyColumns: mergePrimaryKeys,
		Incremental:       mergeIncremental,
	}
	merged, rep := merge.Merge(files, opts)
	if rep.Error != "" {
		return fmt.Errorf("merge failed: %s", rep.Error)
	}

	result := map[string]any{"schema_report": rep}
	if !mergeNoScan {
		inferred := tables.InferRules(rep.ReferenceColumns)
		cfg := inferred.ScanConfig()
		if len(mergePrimaryKeys) > 0 {
			cfg.CompositeKeyColumns = mergePrimaryKeys
		}
		result["health_manifest"] = scan.Scan(merged, rep, cfg)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if mergeOutput != "" {
		return os.WriteFile(mergeOutput, out, 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
