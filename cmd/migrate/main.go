package main

import (
	"context"
	"flag"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/persistence/remote"
)

func main() {
	env := flag.String("env", "production", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	command := flag.String("command", "up", "migration command [up | down | status]")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	if cfg.Backend != config.Backend.Remote {
		log.Fatalf("env [%s] does not use the remote backend", *env)
	}

	secrets, err := config.LoadSecrets()
	if err != nil {
		log.Fatalf("load secrets: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDB,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
	})
	if err != nil {
		log.Fatalf("connect to db: %s", err)
	}
	defer pool.Close()

	switch *command {
	case "up":
		err = remote.Migrate(ctx, pool)
	case "down":
		err = remote.MigrateDown(ctx, pool)
	case "status":
		err = remote.MigrationStatus(ctx, pool)
	default:
		log.Fatalf("unknown command: %s", *command)
	}
	if err != nil {
		log.Errorf("migrate %s: %s", *command, err)
		return
	}

	log.Infof("migrate %s done", *command)
}
