package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
)

func main() {
	_ = godotenv.Load()

	var dsn string
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Applique le schéma Dreamscapes sur la base Supabase",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("SUPABASE_DB_URL"), "URL Postgres (défaut: $SUPABASE_DB_URL)")

	connect := func(ctx context.Context) (*pgxpool.Pool, error) {
		if dsn == "" {
			return nil, fmt.Errorf("SUPABASE_DB_URL manquant")
		}
		return pgxpool.New(ctx, dsn)
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Applique les migrations manquantes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			done, err := database.MigrateUp(ctx, pool)
			for _, name := range done {
				logs.LogJSON("INFO", "Migration applied", map[string]interface{}{"migration": name})
			}
			if err != nil {
				return err
			}
			if len(done) == 0 {
				logs.LogJSON("INFO", "Schema already up to date", nil)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Affiche l'état des migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrations, err := database.Migrations()
			if err != nil {
				return err
			}
			applied, err := database.Applied(ctx, pool)
			if err != nil {
				return err
			}
			for _, m := range migrations {
				state := "pending"
				if applied[m.Name] {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", m.Name, state)
			}
			return nil
		},
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		logs.LogJSON("FATAL", "Migration failed", map[string]interface{}{"error": err.Error()})
	}
}
