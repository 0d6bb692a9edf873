package main

import (
	"github.com/spf13/cobra"

	"pet-adoption-api/internal/config"
	"pet-adoption-api/internal/router"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea tablas (postgres) o índices (mongo) y termina",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			// OpenStores ya corre Migrate / EnsureIndexes
			_, closeStores, err := router.OpenStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			cmd.Printf("store %q listo\n", cfg.Store.Driver)
			return closeStores(cmd.Context())
		},
	}
}
