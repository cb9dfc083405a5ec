package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/spa-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/spa-pos-api/pkg/config"
	"github.com/jhoicas/spa-pos-api/pkg/logger"
)

var commands = map[string]bool{"up": true, "down": true, "status": true, "version": true}

func main() {
	cmd := flag.String("cmd", "up", "comando de migración: up|down|status|version")
	flag.Parse()

	if !commands[*cmd] {
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up|down|status|version)\n", *cmd)
		os.Exit(2)
	}

	cfg := config.Read()
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithStr("component", "migrate")
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: no hay nada que migrar")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	db := postgres.SQLDB(pool)
	defer db.Close()

	log.Info().Str("cmd", *cmd).Msg("ejecutando migraciones")
	if err := postgres.Migrate(ctx, db, *cmd, flag.Args()...); err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
