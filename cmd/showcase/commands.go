package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/store"
)

func newListCmd(a *app) *cobra.Command {
	var category, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			var want catalog.Status
			if status != "" {
				if want, err = catalog.ParseStatus(status); err != nil {
					return err
				}
			}
			if category != "" && !cat.Has(catalog.Category(category)) {
				return fmt.Errorf("unknown category %q (have %s)", category, joinCategories(cat.Categories()))
			}

			tbl := newTable("CATEGORY", "NAME", "STATUS", "VARIANTS", "SIZES")
			rows := 0
			for _, sec := range cat.Sections {
				if category != "" && string(sec.Category) != category {
					continue
				}
				for _, e := range sec.Entries {
					if want != "" && e.Status != want {
						continue
					}
					tbl.AddRow(sec.Category, e.Title(), statusColor(e.Status), len(e.Variants), len(e.Sizes))
					rows++
				}
			}
			if rows == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), faint("no entries"))
				return nil
			}
			printTable(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	cmd.Flags().StringVar(&status, "status", "", "only list entries with this status")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search entry names and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}
			st.SetSearchQuery(args[0])
			filtered := st.Filter().FilteredCatalog

			results := catalog.SearchWithReasons(filtered, args[0])
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", faint(fmt.Sprintf("no entries match %q", args[0])))
				return nil
			}
			tbl := newTable("CATEGORY", "NAME", "MATCH", "DESCRIPTION")
			for _, r := range results {
				tbl.AddRow(r.Category, r.Entry.Title(), r.MatchReason, r.Entry.Description)
			}
			printTable(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one entry with its variants, sizes and states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			for _, sec := range cat.Sections {
				if category != "" && string(sec.Category) != category {
					continue
				}
				for _, e := range sec.Entries {
					if e.Name == args[0] {
						printEntry(cmd.OutOrStdout(), sec.Category, e)
						return nil
					}
				}
			}
			return fmt.Errorf("entry %q not found", args[0])
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category holding the entry")
	return cmd
}

func newProgressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show implementation progress per category and overall",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}
			cat := st.Catalog()

			tbl := newTable("CATEGORY", "DONE", "IN PROGRESS", "NOT STARTED", "PROGRESS")
			for _, sec := range cat.Sections {
				p := catalog.ComputeProgress(&catalog.Catalog{Sections: []catalog.Section{sec}})
				tbl.AddRow(sec.Category, p.Completed, p.InProgress, p.NotStarted,
					fmt.Sprintf("%s %3d%%", progressBar(p.Percentage, 20), p.Percentage))
			}
			printTable(cmd.OutOrStdout(), tbl)

			p := st.Progress()
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s %d/%d complete, %d in progress, %d not started %s\n",
				titleLine("Overall"), p.Completed, p.Total, p.InProgress, p.NotStarted,
				bold(fmt.Sprintf("%d%%", p.Percentage)))
			return nil
		},
	}
}

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Print or set the persisted color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark), string(store.ThemeSystem)},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				theme, err := store.ParseTheme(args[0])
				if err != nil {
					return err
				}
				st.SetTheme(theme)
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.Theme())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "showcase %s\n", version)
		},
	}
}

func joinCategories(cats []catalog.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
