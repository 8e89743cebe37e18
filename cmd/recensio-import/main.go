// Command recensio-import loads catalog and review data from CSV files into
// the database. Rows that already exist are left untouched, so imports can
// be re-run safely.
package main

import (
	"database/sql"
	"os"

	"github.com/emzola/recensio/config"
	"github.com/emzola/recensio/internal/jsonlog"
	"github.com/emzola/recensio/repository"
	"github.com/emzola/recensio/repository/postgres"
	"github.com/spf13/cobra"
)

var (
	logger *jsonlog.Logger
	db     *sql.DB
	repo   repository.Repository
)

var rootCmd = &cobra.Command{
	Use:   "recensio-import",
	Short: "Import catalog and review data from CSV files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Decode()
		if err != nil {
			return err
		}
		db, err = postgres.OpenDBConn(cfg)
		if err != nil {
			return err
		}
		err = postgres.MigrateUp(cfg)
		if err != nil {
			return err
		}
		repo = repository.New(db)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func main() {
	logger = jsonlog.New(os.Stdout, jsonlog.LevelInfo)
	err := rootCmd.Execute()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
