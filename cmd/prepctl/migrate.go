package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"talent-hive/internal/config"
	"talent-hive/internal/database/migration"
	dbpostgres "talent-hive/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var migrateTimeout time.Duration

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 2*time.Minute, "Overall migration timeout")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	applied, err := migration.Runner{Logger: logger}.Run(ctx, db.SQLDB())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(applied) == 0 {
		fmt.Fprintln(out, "schema up to date")
		return nil
	}
	for _, m := range applied {
		fmt.Fprintf(out, "applied V%d %s\n", m.Version, m.Name)
	}
	return nil
}
