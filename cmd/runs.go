package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/fieldharvest/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent scrape runs from the run store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Path == "" {
			return eris.New("runs: no store.path configured")
		}

		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		runs, err := st.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			cmd.Println("No runs recorded yet.")
			return nil
		}

		cmd.Printf("%-36s  %-8s  %5s  %7s  %s\n", "ID", "STATUS", "URLS", "RECORDS", "STARTED")
		for _, r := range runs {
			cmd.Printf("%-36s  %-8s  %5d  %7d  %s\n",
				r.ID, r.Status, r.URLCount, r.RecordCount,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max number of runs to list")
	rootCmd.AddCommand(runsCmd)
}
