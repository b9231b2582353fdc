package cmd

import (
	"fmt"

	"github.com/rotorpost/rotorpost/internal/archive"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// archiveSetup loads minimal configuration needed for archive operations.
// This is used by commands that need archive access without full shared setup.
func archiveSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	// Handle empty backend as the SQLite default
	var backend schema.ArchiveBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.ArchiveBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := archive.InitArchive(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// archiveSetupWrapper wraps archiveSetup to provide PreRunE for archive commands.
func archiveSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveSetup()
}

// archiveMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func archiveMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	// Handle empty backend as the SQLite default
	var backend schema.ArchiveBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.ArchiveBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = archive.GetArchiveDBFilePath()
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr

	return nil
}

// archiveMigrateSetupWrapper wraps archiveMigrateSetup to provide PreRunE for migrate command.
func archiveMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveMigrateSetup()
}

// archiveCmd focused on run archive management.
//
// Note: Archive subcommands use minimal initialization (archiveSetup) instead of
// the full sharedSetup used by analysis commands. This avoids case resolution
// and complex config processing for simple archive operations.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage run tracking and exports",
	Long: `Manage the run archive used for tracking analyses across cases.

When enabled, rotorpost records every loads/motions run, storing:
- Run metadata (timestamp, case root, configuration, duration)
- Windowed statistics per series (count, mean, std, min, max)

The archive lives outside the case directory; case output is never written.
This enables campaign-wide reporting and trend tracking across design
iterations.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  rotorpost archive status

  # Export for analysis in pandas/DuckDB
  rotorpost archive export --output-file campaign-data`,
}

// archiveClearCmd clears the archive data.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and series statistics",
	Long: `Delete all stored runs and their windowed series statistics.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting campaign tracking before a new study
- Database storage is full
- Testing archive features

Examples:
  # Export before clearing
  rotorpost archive export --output-file backup
  rotorpost archive clear`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ClearArchive(cfg.ArchiveBackend, archive.GetArchiveDBFilePath(), cfg.ArchiveDBConnect); err != nil {
			contract.LogFatal("Failed to clear archive data", err)
		}
		fmt.Println("Archive data cleared successfully.")
	},
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about the run archive.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total series statistics recorded
- Database table sizes
- The most recent runs

Examples:
  # Check archive status
  rotorpost archive status`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ExecuteArchiveStatus(); err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
	},
}

// archiveExportCmd exports archive data to Parquet files.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs and statistics to Parquet",
	Long: `Export all stored archive data to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each recorded analysis
- Series statistics - windowed stats per series and run

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all data
  rotorpost archive export --output-file campaign

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('campaign.runs.parquet') LIMIT 10"`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ExecuteArchiveExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export archive data", err)
		}
	},
}

// archiveMigrateCmd runs database migrations for the archive store.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run archive.

Migrations allow:
- Upgrading to new schema versions when rotorpost is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  rotorpost archive migrate

  # Migrate to specific version
  rotorpost archive migrate --target-version 1

  # Rollback to initial state
  rotorpost archive migrate --target-version 0`,
	PreRunE: archiveMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := archive.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
