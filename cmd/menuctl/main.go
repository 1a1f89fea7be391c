// Package main provides menuctl, la CLI de mantenimiento de la API de menús.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	appordering "github.com/jhoicas/Menu-api/internal/application/ordering"
	"github.com/jhoicas/Menu-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Menu-api/pkg/config"
	"github.com/jhoicas/Menu-api/pkg/logger"
)

var (
	verbose bool

	pool          *pgxpool.Pool
	log           *logger.Logger
	importUC      *catalog.ImportUseCase
	maintenanceUC *catalog.MaintenanceUseCase
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "menuctl",
	Short: "Tareas de mantenimiento sobre los menús",
	Long: `menuctl opera directamente contra la base de la API de menús con la misma
configuración que el servidor (DATABASE_URL, DB_HOST, ...).`,
	SilenceUsage:      true,
	PersistentPreRunE: connect,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if pool != nil {
			pool.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log de depuración a stderr")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(rebalanceCmd)
}

// connect carga la configuración, abre el pool y arma los casos de uso.
func connect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		log = logger.New(logger.Config{Env: "development", Level: "debug", Out: os.Stderr})
	} else {
		log = logger.Nop()
	}

	pool, err = postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}

	repos := postgres.NewRepos(pool)
	tx := postgres.NewTxRunner(pool)
	categories := appordering.NewPositionService(appordering.GroupCategories, nil, log.Component("ordering"))
	items := appordering.NewPositionService(appordering.GroupItems, nil, log.Component("ordering"))

	importUC = catalog.NewImportUseCase(repos, tx, categories, items, nil, log.Component("import"))
	maintenanceUC = catalog.NewMaintenanceUseCase(repos, tx, categories, items)
	return nil
}
