package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cogsnet/cogsnet/internal/cogsnet"
	"github.com/cogsnet/cogsnet/internal/config"
	"github.com/cogsnet/cogsnet/internal/ingest"
	"github.com/cogsnet/cogsnet/internal/store"
)

var (
	computeEvents     string
	computeDelimiter  string
	computeForgetting string
	computeMu         float64
	computeTheta      float64
	computeLifetime   int64
	computeInterval   int64
	computeUnits      int64
	computeOut        string
	computeSave       bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a CogSNet from an event file",
	Long: "Reads a delimited event file (header line, then sender;receiver;timestamp rows\n" +
		"sorted by timestamp), folds the events into decaying edge weights, and writes\n" +
		"the resulting network snapshots as CSV and/or into the local database.",
	RunE: runCompute,
}

func init() {
	f := computeCmd.Flags()
	f.StringVar(&computeEvents, "events", "", "Path to the event file (required)")
	f.StringVar(&computeDelimiter, "delimiter", "", "Field delimiter: ',', ';' or tab")
	f.StringVar(&computeForgetting, "forgetting", "", "Forgetting type: linear, power or exponential")
	f.Float64Var(&computeMu, "mu", 0, "Baseline weight assigned on an interaction, (0, 1]")
	f.Float64Var(&computeTheta, "theta", 0, "Decay floor: weights at or below it report as zero")
	f.Int64Var(&computeLifetime, "edge-lifetime", 0, "Time (in units) for a weight to decay from mu to theta")
	f.Int64Var(&computeInterval, "snapshot-interval", 0, "Time (in units) between snapshots; 0 snapshots every event time")
	f.Int64Var(&computeUnits, "units", 0, "Time unit for lifetime and interval: 1, 60 or 3600 seconds")
	f.StringVar(&computeOut, "out", "", "Write snapshots as CSV to this path ('-' for stdout)")
	f.BoolVar(&computeSave, "save", false, "Persist the run in the local database")
	computeCmd.MarkFlagRequired("events")
}

// computeParams merges config-file defaults with whatever flags were set.
func computeParams(cmd *cobra.Command, cfg *config.Config) (cogsnet.Params, string) {
	d := cfg.Defaults

	params := cogsnet.Params{
		Forgetting:       cogsnet.ForgettingType(computeForgetting),
		SnapshotInterval: computeInterval,
		EdgeLifetime:     computeLifetime,
		Mu:               computeMu,
		Theta:            computeTheta,
		Units:            computeUnits,
	}
	if !cmd.Flags().Changed("forgetting") {
		params.Forgetting = cogsnet.ForgettingType(d.Forgetting)
	}
	if !cmd.Flags().Changed("snapshot-interval") {
		params.SnapshotInterval = d.SnapshotInterval
	}
	if !cmd.Flags().Changed("edge-lifetime") {
		params.EdgeLifetime = d.EdgeLifetime
	}
	if !cmd.Flags().Changed("mu") {
		params.Mu = d.Mu
	}
	if !cmd.Flags().Changed("theta") {
		params.Theta = d.Theta
	}
	if !cmd.Flags().Changed("units") {
		params.Units = d.Units
	}

	delimiter := computeDelimiter
	if !cmd.Flags().Changed("delimiter") {
		delimiter = d.Delimiter
	}
	return params, delimiter
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	params, delimiter := computeParams(cmd, cfg)

	events, nodes, err := ingest.ReadEvents(computeEvents, delimiter)
	if err != nil {
		return err
	}

	snapshots, err := cogsnet.Run(params, events, nodes.RealIDs())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "cogsnet: %d events, %d nodes -> %d snapshots (%s forgetting)\n",
		len(events), nodes.Len(), len(snapshots), params.Forgetting)

	if computeOut != "" {
		if err := writeSnapshotsCSV(computeOut, snapshots); err != nil {
			return err
		}
		if computeOut != "-" {
			fmt.Fprintf(os.Stderr, "  csv: %s\n", computeOut)
		}
	}

	if computeSave {
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

		run := &store.Run{
			Source:           computeEvents,
			Forgetting:       string(params.Forgetting),
			SnapshotInterval: params.SnapshotInterval,
			EdgeLifetime:     params.EdgeLifetime,
			Mu:               params.Mu,
			Theta:            params.Theta,
			Units:            params.Units,
			NodeCount:        nodes.Len(),
			EventCount:       len(events),
		}
		if err := db.SaveRun(run, snapshots); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  run: %s (db: %s)\n", run.ID, dbPath)
	}

	return nil
}

// writeSnapshotsCSV writes all snapshots as semicolon-separated rows of
// snapshot index, snapshot time, source ID, destination ID and weight.
func writeSnapshotsCSV(path string, snapshots []cogsnet.Snapshot) error {
	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	w.Comma = ';'

	if err := w.Write([]string{"snapshot", "time", "sender", "receiver", "weight"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for idx, snap := range snapshots {
		for _, e := range snap.Edges {
			row := []string{
				strconv.Itoa(idx),
				strconv.FormatInt(snap.Time, 10),
				strconv.FormatInt(e.Src, 10),
				strconv.FormatInt(e.Dst, 10),
				strconv.FormatFloat(e.Weight, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	w.Flush()
	return w.Error()
}
