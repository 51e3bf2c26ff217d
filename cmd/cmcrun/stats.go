package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldspin/cmc/snapshot"
)

var statsSnapshotPath string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the counters and magnetization recorded in a snapshot",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsSnapshotPath, "snapshot-in", "", "path to a snapshot file (required)")
	_ = statsCmd.MarkFlagRequired("snapshot-in")
}

func runStats(cmd *cobra.Command, args []string) error {
	f, err := os.Open(statsSnapshotPath)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := snapshot.Load(f)
	if err != nil {
		return err
	}

	c := snap.Counters
	var ratio float64
	if c.Total > 0 {
		ratio = float64(c.Successes) / float64(c.Total)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sites:            %d\n", len(snap.Spins))
	fmt.Fprintf(cmd.OutOrStdout(), "temperature (K):  %g\n", snap.TemperatureK)
	fmt.Fprintf(cmd.OutOrStdout(), "phi/theta (deg):  %g / %g\n", snap.PhiDeg, snap.ThetaDeg)
	fmt.Fprintf(cmd.OutOrStdout(), "successes:        %d\n", c.Successes)
	fmt.Fprintf(cmd.OutOrStdout(), "energy rejects:   %d\n", c.EnergyRejects)
	fmt.Fprintf(cmd.OutOrStdout(), "sphere rejects:   %d\n", c.SphereRejects)
	fmt.Fprintf(cmd.OutOrStdout(), "total trials:     %d\n", c.Total)
	fmt.Fprintf(cmd.OutOrStdout(), "acceptance ratio: %g\n", ratio)
	fmt.Fprintf(cmd.OutOrStdout(), "magnetization:    (%g, %g, %g)\n", snap.M[0], snap.M[1], snap.M[2])

	return nil
}
