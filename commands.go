package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/slnet/internal/util"
	"github.com/yumyai/slnet/logger"
	"github.com/yumyai/slnet/pkg/config"
	"github.com/yumyai/slnet/pkg/dataset"
	"github.com/yumyai/slnet/pkg/dgidb"
	"github.com/yumyai/slnet/pkg/export"
	"github.com/yumyai/slnet/pkg/network"
	"github.com/yumyai/slnet/pkg/pipeline"
	"github.com/yumyai/slnet/pkg/store"
)

// stageEnv is everything a stage command needs: the parsed manifest and the
// driver/essential membership sets.
type stageEnv struct {
	manifest   *config.Manifest
	drivers    []dataset.DriverGene
	driverSet  dataset.GeneSet
	essentials dataset.GeneSet
}

func setupStages() (*stageEnv, error) {

	if err := util.EnsureDir(flagOutDir); err != nil {
		return nil, fmt.Errorf("output dir %s: %w", flagOutDir, err)
	}

	m, err := config.Load(flagManifest)
	if err != nil {
		return nil, err
	}

	drivers, err := dataset.LoadDrivers(m.Drivers)
	if err != nil {
		return nil, err
	}
	essentials, err := dataset.LoadEssentials(m.Essentials)
	if err != nil {
		return nil, err
	}

	if err := export.WriteDrivers(path.Join(flagOutDir, "driver_genes.csv"), drivers); err != nil {
		return nil, err
	}

	return &stageEnv{
		manifest:   m,
		drivers:    drivers,
		driverSet:  dataset.DriverSet(drivers),
		essentials: essentials,
	}, nil
}

// buildPairs runs load -> unify -> filter -> aggregate over a source group.
func (env *stageEnv) buildPairs(srcs []config.Source) ([]pipeline.Pair, error) {

	tables, err := dataset.LoadSources(srcs)
	if err != nil {
		return nil, err
	}

	unified := pipeline.Unify(tables)
	filtered := pipeline.KeepDriverTouching(unified, env.driverSet)
	filtered = pipeline.DropEssential(filtered, env.essentials)

	return pipeline.Aggregate(filtered), nil
}

func (env *stageEnv) comutPairs() ([]pipeline.Pair, error) {
	if len(env.manifest.Comutation) == 0 {
		logger.Warn("No co-mutation sources in manifest, combined table is SL only")
		return nil, nil
	}
	return env.buildPairs(env.manifest.Comutation)
}

func renderNetwork(n *network.Network, name, title string) error {

	dotPath := path.Join(flagOutDir, name+".dot")
	f, err := createFile(dotPath)
	if err != nil {
		return err
	}
	if err := n.WriteDOT(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	htmlPath := path.Join(flagOutDir, name+".html")
	if err := n.RenderHTML(htmlPath, title); err != nil {
		return err
	}

	logger.Info("Rendered network",
		zap.String("dot", dotPath), zap.String("html", htmlPath))
	return nil
}

func createFile(p string) (*os.File, error) {
	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", p, err)
	}
	return f, nil
}

func snapshotPath() string {
	if flagSnapshot != "" {
		return flagSnapshot
	}
	return path.Join(flagOutDir, "slnet.db")
}

// network: stages 1-5 over the synthetic-lethality sources.
func newNetworkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Build and render the synthetic-lethality network",
		RunE: func(cmd *cobra.Command, args []string) error {

			env, err := setupStages()
			if err != nil {
				return err
			}

			pairs, err := env.buildPairs(env.manifest.SyntheticLethality)
			if err != nil {
				return err
			}

			if err := export.WritePairs(path.Join(flagOutDir, "sl_pairs.csv"), pairs); err != nil {
				return err
			}

			n := network.FromPairs(pairs, env.driverSet)
			return renderNetwork(n, "sl_network", "PDAC synthetic-lethality network")
		},
	}
}

// merge: stage 6, the combined SL + co-mutation table.
func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge the SL network with the co-mutation network",
		RunE: func(cmd *cobra.Command, args []string) error {

			env, err := setupStages()
			if err != nil {
				return err
			}

			combined, err := buildCombined(env)
			if err != nil {
				return err
			}

			if err := export.WriteCombined(path.Join(flagOutDir, "combined_interactions.csv"), combined); err != nil {
				return err
			}

			n := network.FromCombined(combined, env.driverSet)
			return renderNetwork(n, "combined_network", "PDAC combined interaction network")
		},
	}
}

// annotate: stage 7, DGIdb drug annotation over the combined table.
func newAnnotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "annotate",
		Short: "Annotate partner genes with DGIdb drug targets",
		RunE: func(cmd *cobra.Command, args []string) error {

			env, err := setupStages()
			if err != nil {
				return err
			}

			combined, err := buildCombined(env)
			if err != nil {
				return err
			}

			_, err = annotateAndExport(cmd.Context(), env, combined)
			return err
		},
	}
}

// run: every stage in order, snapshotted under one run ID.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and snapshot the results",
		RunE: func(cmd *cobra.Command, args []string) error {

			env, err := setupStages()
			if err != nil {
				return err
			}

			slPairs, err := env.buildPairs(env.manifest.SyntheticLethality)
			if err != nil {
				return err
			}
			if err := export.WritePairs(path.Join(flagOutDir, "sl_pairs.csv"), slPairs); err != nil {
				return err
			}
			slNet := network.FromPairs(slPairs, env.driverSet)
			if err := renderNetwork(slNet, "sl_network", "PDAC synthetic-lethality network"); err != nil {
				return err
			}

			comut, err := env.comutPairs()
			if err != nil {
				return err
			}
			combined := pipeline.Merge(slPairs, comut)
			if err := export.WriteCombined(path.Join(flagOutDir, "combined_interactions.csv"), combined); err != nil {
				return err
			}

			ctx := cmd.Context()
			targets, err := annotateAndExport(ctx, env, combined)
			if err != nil {
				return err
			}

			db, err := store.Open(snapshotPath())
			if err != nil {
				return err
			}
			defer db.Close()

			runID, err := db.NewRun(ctx)
			if err != nil {
				return err
			}
			if err := db.SaveCombined(ctx, runID, combined); err != nil {
				return err
			}
			if err := db.SaveDrugTargets(ctx, runID, targets); err != nil {
				return err
			}

			logger.Info("Snapshot saved",
				zap.String("run_id", runID), zap.String("db", snapshotPath()))
			return nil
		},
	}
}

func buildCombined(env *stageEnv) ([]pipeline.CombinedRow, error) {

	slPairs, err := env.buildPairs(env.manifest.SyntheticLethality)
	if err != nil {
		return nil, err
	}
	comut, err := env.comutPairs()
	if err != nil {
		return nil, err
	}
	return pipeline.Merge(slPairs, comut), nil
}

// annotateAndExport queries DGIdb for the partner genes and writes the
// partner list, the drug table and the annotated graph.
func annotateAndExport(ctx context.Context, env *stageEnv, combined []pipeline.CombinedRow) ([]dgidb.DrugTarget, error) {

	partners := pipeline.Partners(combined, env.driverSet)
	if err := export.WritePartners(path.Join(flagOutDir, "partner_genes.csv"), partners); err != nil {
		return nil, err
	}

	client := dgidb.NewClient(flagAPIBase)
	targets, err := client.AnnotateGenes(ctx, partners)
	if err != nil {
		return nil, err
	}

	if err := export.WriteDrugTargets(path.Join(flagOutDir, "drug_targets.csv"), targets); err != nil {
		return nil, err
	}

	n := network.FromCombined(combined, env.driverSet)
	n.AddDrugTargets(targets)
	if err := renderNetwork(n, "annotated_network", "PDAC interaction network with drug targets"); err != nil {
		return nil, err
	}

	return targets, nil
}
