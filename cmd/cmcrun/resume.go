package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldspin/cmc/cmc"
	"github.com/fieldspin/cmc/hamiltonian"
	"github.com/fieldspin/cmc/materials"
	"github.com/fieldspin/cmc/snapshot"
)

var (
	snapshotInPath    string
	resumeSweeps      int
	resumeMaterials   string
	resumeNeighbors   string
	resumeExchangeJ   float64
	resumeAnisoKu     float64
	resumeEasyAxis    []float64
	resumeZeemanField []float64
	resumeSnapshotOut string
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a CMC integration from a snapshot",
	RunE:  runResume,
}

func init() {
	resumeCmd.Flags().StringVar(&snapshotInPath, "snapshot-in", "", "path to a snapshot written by 'run' or a previous 'resume' (required)")
	resumeCmd.Flags().IntVar(&resumeSweeps, "sweeps", 1, "number of sweeps to run before stopping")
	resumeCmd.Flags().StringVar(&resumeMaterials, "materials", "", "path to the materials table used by this snapshot's field (required)")
	resumeCmd.Flags().StringVar(&resumeNeighbors, "neighbors", "", "path to the adjacency file used when the snapshot was created (empty = periodic chain fallback)")
	resumeCmd.Flags().Float64Var(&resumeExchangeJ, "exchange-j", 0, "exchange coupling J used by the reference Hamiltonian")
	resumeCmd.Flags().Float64Var(&resumeAnisoKu, "anisotropy-ku", 0, "uniaxial anisotropy constant used by the reference Hamiltonian")
	resumeCmd.Flags().Float64SliceVar(&resumeEasyAxis, "easy-axis", []float64{0, 0, 1}, "easy axis unit vector (x,y,z) used by the reference Hamiltonian")
	resumeCmd.Flags().Float64SliceVar(&resumeZeemanField, "zeeman-field-t", []float64{0, 0, 0}, "applied field in tesla (x,y,z) used by the reference Hamiltonian")
	resumeCmd.Flags().StringVar(&resumeSnapshotOut, "snapshot-out", "", "if set, write the resulting state here; defaults to overwriting --snapshot-in")
	_ = resumeCmd.MarkFlagRequired("snapshot-in")
	_ = resumeCmd.MarkFlagRequired("materials")
}

func runResume(cmd *cobra.Command, args []string) error {
	in, err := os.Open(snapshotInPath)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	snap, err := snapshot.Load(in)
	in.Close()
	if err != nil {
		return err
	}

	matFile, err := os.Open(resumeMaterials)
	if err != nil {
		return fmt.Errorf("open materials: %w", err)
	}
	table, err := materials.LoadTable(matFile)
	matFile.Close()
	if err != nil {
		return err
	}

	nbrs, err := loadNeighbors(resumeNeighbors, len(snap.Spins))
	if err != nil {
		return err
	}

	field := cmc.NewSpinField(snap.Material)
	for i, s := range snap.Spins {
		field.Set(i, s)
	}

	oracle := hamiltonian.NewReference(
		field, nbrs, table,
		resumeExchangeJ, resumeAnisoKu,
		sliceToSpin(resumeEasyAxis), sliceToSpin(resumeZeemanField),
	)

	cfg := cmc.Config{
		PhiDeg:                     snap.PhiDeg,
		ThetaDeg:                   snap.ThetaDeg,
		TemperatureK:               snap.TemperatureK,
		ShortCircuitNegativeDeltaE: snap.ShortCircuitNegativeDeltaE,
		Debug:                      debugToZap(logger),
	}
	driver, err := cmc.NewDriverFromSnapshot(cfg, field, oracle, table, snap.RNG, snap.Counters, snap.M)
	if err != nil {
		return fmt.Errorf("restore driver: %w", err)
	}

	logger.Info("resuming run",
		zap.Int("sites", len(snap.Spins)),
		zap.Int("sweeps", resumeSweeps),
		zap.Float64("temperature_k", snap.TemperatureK),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, runErr := driver.Run(ctx, resumeSweeps)
	stats := driver.Stats()
	acceptanceRatio.Set(stats.AcceptanceRatio)

	outPath := resumeSnapshotOut
	if outPath == "" {
		outPath = snapshotInPath
	}
	out, cerr := os.Create(outPath)
	if cerr != nil {
		return fmt.Errorf("create snapshot: %w", cerr)
	}
	defer out.Close()
	if serr := snapshot.Save(out, driver); serr != nil {
		return serr
	}

	logger.Info("resume finished",
		zap.Uint64("successes", stats.Successes),
		zap.Float64("acceptance_ratio", stats.AcceptanceRatio),
	)

	return runErr
}

func sliceToSpin(v []float64) cmc.Spin {
	var s cmc.Spin
	for i := 0; i < 3 && i < len(v); i++ {
		s[i] = v[i]
	}
	return s
}
