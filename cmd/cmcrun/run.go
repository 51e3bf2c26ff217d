package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldspin/cmc/cmc"
	"github.com/fieldspin/cmc/config"
	"github.com/fieldspin/cmc/hamiltonian"
	"github.com/fieldspin/cmc/materials"
	"github.com/fieldspin/cmc/snapshot"
)

var (
	configPath      string
	sweepsOverride  int
	snapshotOutPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a fresh CMC integration from a config file",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to run config YAML (required)")
	runCmd.Flags().IntVar(&sweepsOverride, "sweeps", 0, "override the config's sweep count (0 = use config value)")
	runCmd.Flags().StringVar(&snapshotOutPath, "snapshot-out", "", "if set, write a resumable snapshot here when the run stops")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfgFile, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer cfgFile.Close()

	rc, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	matFile, err := os.Open(rc.MaterialsPath)
	if err != nil {
		return fmt.Errorf("open materials: %w", err)
	}
	defer matFile.Close()

	table, err := materials.LoadTable(matFile)
	if err != nil {
		return err
	}

	nbrs, err := loadNeighbors(rc.NeighborsPath, rc.SiteCount)
	if err != nil {
		return err
	}

	materialIndex := make([]int, rc.SiteCount)
	for i := range materialIndex {
		materialIndex[i] = i % table.Len()
	}
	field := cmc.NewSpinField(materialIndex)

	oracle := hamiltonian.NewReference(
		field, nbrs, table,
		rc.ExchangeJ, rc.AnisotropyKu,
		cmc.Spin(rc.EasyAxis), cmc.Spin(rc.ZeemanFieldT),
	)

	driverCfg := cmc.Config{
		PhiDeg:                     rc.PhiDeg,
		ThetaDeg:                   rc.ThetaDeg,
		Seed:                       rc.Seed,
		TemperatureK:               rc.TemperatureK,
		ShortCircuitNegativeDeltaE: rc.ShortCircuitNegativeDeltaE,
		Debug:                      debugToZap(logger),
	}
	driver, err := cmc.NewDriver(driverCfg, field, oracle, table)
	if err != nil {
		return err
	}

	sweeps := rc.Sweeps
	if sweepsOverride > 0 {
		sweeps = sweepsOverride
	}

	runID := uuid.New()
	logger.Info("starting run",
		zap.String("run_id", runID.String()),
		zap.Int("sites", rc.SiteCount),
		zap.Int("sweeps", sweeps),
		zap.Float64("temperature_k", rc.TemperatureK),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stopServer := maybeServeMetrics(metricsAddr, logger)
	defer stopServer()

	delta, runErr := driver.Run(ctx, sweeps)
	stats := driver.Stats()
	sweepsTotal.Add(float64(delta.Total) / float64(rc.SiteCount))
	acceptanceRatio.Set(stats.AcceptanceRatio)
	if stats.Total > 0 {
		sphereRejectRatio.Set(float64(stats.SphereRejects) / float64(stats.Total))
	}
	mx, my, mz := driver.Magnetization()
	n := float64(rc.SiteCount)
	if n > 0 {
		c := driver.Frame().C
		magnetizationAlongConstraint.Set((mx*c[0] + my*c[1] + mz*c[2]) / n)
	}

	logger.Info("run finished",
		zap.String("run_id", runID.String()),
		zap.Uint64("successes", stats.Successes),
		zap.Uint64("energy_rejects", stats.EnergyRejects),
		zap.Uint64("sphere_rejects", stats.SphereRejects),
		zap.Float64("acceptance_ratio", stats.AcceptanceRatio),
		zap.Float64("mx", mx), zap.Float64("my", my), zap.Float64("mz", mz),
	)

	if snapshotOutPath != "" {
		out, cerr := os.Create(snapshotOutPath)
		if cerr != nil {
			return fmt.Errorf("create snapshot: %w", cerr)
		}
		defer out.Close()
		if serr := snapshot.Save(out, driver); serr != nil {
			return serr
		}
	}

	return runErr
}

// debugToZap bridges the core's plain DebugFunc callback into structured
// logging, since the cmc package itself never imports a logging library.
func debugToZap(log *zap.Logger) cmc.DebugFunc {
	if log == nil {
		return nil
	}
	return func(ev cmc.DebugEvent) {
		log.Debug("sweep complete",
			zap.Int("sweep", ev.Sweep),
			zap.Uint64("successes", ev.Stats.Successes),
			zap.Uint64("energy_rejects", ev.Stats.EnergyRejects),
			zap.Uint64("sphere_rejects", ev.Stats.SphereRejects),
			zap.Float64("acceptance_ratio", ev.Stats.AcceptanceRatio),
			zap.Float64("mx", ev.Magnetization[0]),
			zap.Float64("my", ev.Magnetization[1]),
			zap.Float64("mz", ev.Magnetization[2]),
		)
	}
}
