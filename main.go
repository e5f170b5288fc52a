package main

import (
	"os"
	"path"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yumyai/slnet/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"
)

const VERSION = "0.1.0"

var (
	slnet_data   string
	flagManifest string
	flagOutDir   string
	flagSnapshot string
	flagAPIBase  string
)

func main() {

	// Establish logger
	LOG_LEVEL := zapcore.InfoLevel

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	slnet_data = os.Getenv("SLNET_DATA")

	if slnet_data == "" {
		logger.Warn("No local environment (SLNET_DATA), using default value (./data)")
		slnet_data = "./data"
	}

	logger.Info("Start:", zap.String("Version", VERSION))

	root := &cobra.Command{
		Use:           "slnet",
		Short:         "Build the PDAC synthetic-lethality interaction network",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagManifest, "manifest",
		path.Join(slnet_data, "sources.yaml"), "dataset sources manifest")
	root.PersistentFlags().StringVar(&flagOutDir, "out",
		"./results", "output directory for CSV and render artifacts")
	root.PersistentFlags().StringVar(&flagSnapshot, "snapshot",
		"", "sqlite snapshot database (default <out>/slnet.db)")
	root.PersistentFlags().StringVar(&flagAPIBase, "dgidb",
		os.Getenv("SLNET_DGIDB_URL"), "DGIdb API base URL (default public API)")

	root.AddCommand(
		newNetworkCmd(),
		newMergeCmd(),
		newAnnotateCmd(),
		newRunCmd(),
	)

	if err := root.Execute(); err != nil {
		logger.Error("Run failed", zap.String("error message", err.Error()))
		logger.Sync()
		os.Exit(1)
	}
}
