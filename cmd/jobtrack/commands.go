package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"jobtrack-engine/internal/bridge"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/export"
	"jobtrack-engine/internal/store"
)

func rootCmd() *cobra.Command {
	var (
		dataDir  string
		logLevel string
		a        *app
	)

	cmd := &cobra.Command{
		Use:           "jobtrack",
		Short:         "Scrape job postings and track applications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(dataDir, logLevel)
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DataDir(), "Data directory (config, database, backups)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	get := func() *app { return a }
	cmd.AddCommand(
		scrapeCmd(get),
		addCmd(get),
		listCmd(get),
		statusCmd(get),
		deleteCmd(get),
		exportCmd(get),
		columnsCmd(get),
		themeCmd(get),
	)
	return cmd
}

func scrapeCmd(get func() *app) *cobra.Command {
	var (
		save   bool
		status string
	)
	cmd := &cobra.Command{
		Use:   "scrape URL...",
		Short: "Extract title, company and job id from job pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			host, fetcher := a.scraper()
			results := scrapeAll(cmd.Context(), host, fetcher, args)

			out := cmd.OutOrStdout()
			for _, r := range results {
				printResult(out, r)
			}
			if !save {
				return nil
			}

			return a.withStore(func(tr *store.Tracker) error {
				for _, r := range results {
					if !r.Captured {
						continue
					}
					form := bridge.Form{Status: status}
					form.Hydrate(r.Candidate)
					rec, err := tr.SaveJob(cmd.Context(), form.NewJob())
					switch {
					case errors.Is(err, store.ErrDuplicate):
						fmt.Fprintf(out, "skipped %s: %v\nexisting record: %s\n", r.Candidate.URL, err, rec.ID)
					case err != nil:
						fmt.Fprintf(out, "not saved %s: %v\n", r.Candidate.URL, err)
					default:
						fmt.Fprintf(out, "saved %s (%s at %s)\n", rec.ID, rec.Title, rec.Company)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Save captured postings")
	cmd.Flags().StringVar(&status, "status", "", "Status for saved postings (default: first column)")
	return cmd
}

func printResult(w io.Writer, r bridge.Result) {
	c := r.Candidate
	fmt.Fprintf(w, "%s\n", c.URL)
	if r.Warning != "" {
		fmt.Fprintf(w, "  ! %s\n", r.Warning)
		return
	}
	fmt.Fprintf(w, "  %s\n", r.Message)
	fmt.Fprintf(w, "  title:   %s\n  company: %s\n", c.Title, c.Company)
	if id := domain.JobIDValue(c.JobID); id != "" {
		fmt.Fprintf(w, "  job id:  %s\n", id)
	}
}

func addCmd(get func() *app) *cobra.Command {
	var in domain.NewJob
	var jobID string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a job entered by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				in.JobID = domain.StringPtr(strings.TrimSpace(jobID))
				rec, err := tr.SaveJob(cmd.Context(), in)
				if errors.Is(err, store.ErrDuplicate) {
					fmt.Fprintf(cmd.OutOrStdout(), "%v\nexisting record: %s\n", err, rec.ID)
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", rec.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Company, "company", "", "Company name (required)")
	cmd.Flags().StringVar(&in.Title, "title", "", "Role title (required)")
	cmd.Flags().StringVar(&in.URL, "url", "", "Posting URL")
	cmd.Flags().StringVar(&in.Date, "date", "", "Application date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&in.Status, "status", "", "Board column (default: first column)")
	cmd.Flags().StringVar(&jobID, "job-id", "", "Site job id, e.g. greenhouse-98765")
	return cmd
}

func listCmd(get func() *app) *cobra.Command {
	var (
		search string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked jobs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				jobs, err := tr.Search(cmd.Context(), search)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(jobs)
				}
				fmt.Fprintln(cmd.OutOrStdout(), jobsTable(jobs))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by company or title")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func jobsTable(jobs []domain.JobRecord) string {
	if len(jobs) == 0 {
		return "No jobs tracked."
	}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{j.ID, j.Company, j.Title, j.Status, j.Date})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Company", "Title", "Status", "Date").
		Rows(rows...).
		String()
}

func statusCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a job to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				rec, err := tr.UpdateStatus(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", rec.ID, rec.Status)
				return nil
			})
		},
	}
}

func deleteCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Stop tracking a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				if err := tr.DeleteJob(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func exportCmd(get func() *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tracked jobs as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				jobs, err := tr.Jobs(cmd.Context())
				if err != nil {
					return err
				}

				var b []byte
				switch format {
				case "csv":
					s, err := export.CSV(jobs)
					if err != nil {
						return err
					}
					b = []byte(s)
					if out == "" {
						out = export.CSVFileName
					}
				case "xlsx":
					if b, err = export.XLSX(jobs); err != nil {
						return err
					}
					if out == "" {
						out = export.XLSXFileName
					}
				default:
					return fmt.Errorf("unknown format %q (csv or xlsx)", format)
				}

				if out == "-" {
					_, err = cmd.OutOrStdout().Write(b)
					return err
				}
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d jobs to %s\n", len(jobs), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file, - for stdout")
	return cmd
}

func columnsCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show board columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				b, err := tr.Board(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), boardTable(b))
				return nil
			})
		},
	}

	var color string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Append a board column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				b, err := tr.AddColumn(cmd.Context(), args[0], color)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), boardTable(b))
				return nil
			})
		},
	}
	add.Flags().StringVar(&color, "color", "", "Accent color hex (default from config)")
	cmd.AddCommand(add)
	return cmd
}

func boardTable(b domain.Board) string {
	rows := make([][]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		rows = append(rows, []string{c, strconv.Itoa(b.Widths[c]), b.Colors[c]})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Column", "Width", "Color").
		Rows(rows...).
		String()
}

func themeCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the board theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().withStore(func(tr *store.Tracker) error {
				if len(args) == 1 {
					if err := tr.SetTheme(cmd.Context(), args[0]); err != nil {
						return err
					}
				}
				theme, err := tr.Theme(cmd.Context())
				if err != nil {
					return err
				}
				if theme == "" {
					theme = "(not set)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			})
		},
	}
}
