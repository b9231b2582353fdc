// Package cmd defines the command-line interface for rotorpost.
package cmd

import (
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(loadsCmd)
	rootCmd.AddCommand(motionsCmd)
	rootCmd.AddCommand(spanwiseCmd)
	rootCmd.AddCommand(phaseCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(archiveCmd)

	// Add the archive subcommands to the parent archive command
	archiveCmd.AddCommand(archiveClearCmd)
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("keys", "k", "", "Comma-separated list of output keys to read")
	rootCmd.PersistentFlags().String("time-dir", string(schema.LatestDir), "Time directory selection: latest, first, exact, closest, combine")
	rootCmd.PersistentFlags().String("time-dir-value", "", "Target start time for exact/closest selection")
	rootCmd.PersistentFlags().StringP("window", "w", "", "Crop window 'lo:hi' in seconds; either side may be empty")
	rootCmd.PersistentFlags().Int("turbine", contract.DefaultTurbine, "Turbine index to read")
	rootCmd.PersistentFlags().Int("blade", contract.AllBlades, "Blade filter for spanwise keys (-1 = all blades)")
	rootCmd.PersistentFlags().String("at", "", "Comma-separated sample instants in seconds")
	rootCmd.PersistentFlags().Int("station", 0, "Station column used when a scalar view of a spanwise key is needed")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("archive-backend", string(schema.SQLiteBackend), "Run archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of phaseCmd to Viper
	phaseCmd.Flags().Float64("frequency", 0, "Rotation frequency in Hz")
	phaseCmd.Flags().Int("bins", contract.DefaultBins, "Number of phase bins over one revolution")
	if err := viper.BindPFlags(phaseCmd.Flags()); err != nil {
		contract.LogFatal("Error binding phase flags", err)
	}

	// Bind all flags of plotCmd to Viper
	plotCmd.Flags().String("fig-dir", "figures", "Directory to write figure files into")
	plotCmd.Flags().String("fig-format", string(schema.PNGFigure), "Figure format: png or svg")
	plotCmd.Flags().Bool("terminal", false, "Render quick-look charts in the terminal instead of files")
	if err := viper.BindPFlags(plotCmd.Flags()); err != nil {
		contract.LogFatal("Error binding plot flags", err)
	}

	// Bind all flags of archiveMigrateCmd to Viper
	archiveMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(archiveMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive migrate flags", err)
	}
}
