package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cogsnet/cogsnet/internal/config"
	"github.com/cogsnet/cogsnet/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted CogSNet runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		dbPath := cfg.Database.Path
		if dbPath == "" {
			if dbPath, err = store.DefaultDBPath(); err != nil {
				return fmt.Errorf("resolve db path: %w", err)
			}
		}
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		runs, err := db.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "no runs stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tFORGETTING\tNODES\tEVENTS\tSNAPSHOTS\tSOURCE")
		for _, r := range runs {
			created := time.UnixMilli(r.CreatedAt).Format("2006-01-02 15:04")
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				r.ID, created, r.Forgetting, r.NodeCount, r.EventCount, r.SnapshotCount, r.Source)
		}
		return w.Flush()
	},
}
