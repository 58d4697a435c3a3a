package main

import (
	"errors"
	"fmt"

	"workerTracker/internal/config"
	"workerTracker/internal/logger"
	"workerTracker/internal/repository/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Миграции схемы PostgreSQL",
		Long: `Применяет или откатывает встроенные миграции PostgreSQL.

Адрес базы берётся из database.url или WORKERTRACKER_DATABASE_URL.
Для inmemory и sqlite миграции не нужны: sqlite создаёт схему сам.

Примеры:
  worker-tracker migrate up
  worker-tracker migrate down --config prod.yml`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL(*configPath)
			if err != nil {
				return err
			}
			return postgres.MigrateUp(url)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Откатить все миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL(*configPath)
			if err != nil {
				return err
			}
			return postgres.MigrateDown(url)
		},
	})
	return cmd
}

func databaseURL(configPath string) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	if err := logger.Init(cfg.Logging.Development); err != nil {
		return "", fmt.Errorf("инициализация логгера: %w", err)
	}
	if cfg.Database.URL == "" {
		return "", errors.New("migrate: database.url не задан")
	}
	return cfg.Database.URL, nil
}
