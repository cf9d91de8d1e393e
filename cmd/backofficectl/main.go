// backofficectl tareas de operación: migraciones, emisión de tokens y datos de ejemplo.
//
//	backofficectl migrate up | down [--steps n] | version
//	backofficectl token issue --user <id> --role admin|operator|analyst
//	backofficectl seed [--rng-seed n]
package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/jhoicas/backoffice-api/internal/bootstrap"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	downSteps int
	tokenUser string
	tokenRole string
	rngSeed   uint64
)

var rootCmd = &cobra.Command{
	Use:           "backofficectl",
	Short:         "Herramientas de operación del back-office",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema embebido",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *postgres.Migrator) error {
			if err := mg.Up(); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revierte migraciones (--steps 0 revierte todo)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *postgres.Migrator) error {
			if err := mg.Down(downSteps); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión aplicada",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *postgres.Migrator) error {
			return printVersion(cmd, mg)
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Tokens JWT de acceso",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Emite un token firmado con JWT_SECRET",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		roles := []string{jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleAnalyst}
		if !slices.Contains(roles, tokenRole) {
			return fmt.Errorf("rol %q inválido, use uno de %v", tokenRole, roles)
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, tokenUser, tokenRole, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Siembra catálogo, stock y ventas de ejemplo si la base está vacía",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "backofficectl"})
		ctx := context.Background()
		svc, err := bootstrap.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()

		seeded, err := svc.Seed(ctx, rngSeed)
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "la base ya tiene productos, nada que sembrar")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "datos de ejemplo sembrados")
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "pasos a revertir (0 = todos)")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	tokenIssueCmd.Flags().StringVar(&tokenUser, "user", "", "ID del usuario (sub)")
	tokenIssueCmd.Flags().StringVar(&tokenRole, "role", jwt.RoleOperator, "admin | operator | analyst")
	_ = tokenIssueCmd.MarkFlagRequired("user")
	tokenCmd.AddCommand(tokenIssueCmd)

	seedCmd.Flags().Uint64Var(&rngSeed, "rng-seed", uint64(time.Now().UnixNano()), "semilla de la secuencia aleatoria")

	rootCmd.AddCommand(migrateCmd, tokenCmd, seedCmd)
}

func withMigrator(fn func(mg *postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		return err
	}
	defer mg.Close()
	return fn(mg)
}

func printVersion(cmd *cobra.Command, mg *postgres.Migrator) error {
	v, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "versión: %d dirty: %t\n", v, dirty)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
