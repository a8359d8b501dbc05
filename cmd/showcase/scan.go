package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnana997/showcase/pkg/scanner"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		out     string
		workers int
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "scan [components-dir]",
		Short: "Fill entry variants and sizes from cva() configs in widget sources",
		Long: `scan parses the JSX and TSX files under components-dir (default:
components_dir from config) and matches each file to the catalog entry with
the same name (button.tsx, Button.tsx and text-field.tsx all match) or to the
PascalCase components it exports. Matched entries get their variants and
sizes from the cva() "variant" and "size" keys, and an empty description is
filled from the component's JSDoc. The enriched catalog is written as YAML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.ComponentsDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no components directory: pass one or set components_dir")
			}

			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			cfg := scanner.DefaultScanConfig()
			cfg.Workers = workers
			cfg.Exclude = append(cfg.Exclude, exclude...)

			sc := scanner.New(a.logger)
			defer sc.Close()

			enriched, report, err := sc.Scan(cmd.Context(), dir, cat, cfg)
			if err != nil {
				return err
			}
			data, err := enriched.EncodeYAML()
			if err != nil {
				return fmt.Errorf("failed to encode catalog: %w", err)
			}

			if out == "" || out == "-" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			printScanReport(cmd, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the catalog here instead of stdout")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel parsers (0 = based on CPU count)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "extra glob patterns to skip")
	return cmd
}

// printScanReport writes the summary to stderr so stdout stays valid YAML.
func printScanReport(cmd *cobra.Command, report *scanner.Report) {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "%s %d files, %d matched, %d unmatched\n",
		titleLine("Scan"), report.FilesScanned, len(report.Matches), len(report.Unmatched))
	if len(report.Matches) > 0 {
		tbl := newTable("FILE", "CATEGORY", "ENTRY", "VARIANTS", "SIZES", "DOC")
		for _, m := range report.Matches {
			doc := ""
			if m.Described {
				doc = "filled"
			}
			tbl.AddRow(m.File, m.Category, m.Entry, m.Variants, m.Sizes, doc)
		}
		printTable(w, tbl)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  ! %s\n", e)
	}
}
