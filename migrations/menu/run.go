package main

import (
	"context"
	"embed"

	"github.com/ghuser/backoffice/pkg/config"
	"github.com/ghuser/backoffice/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, MigrationsFS); err != nil {
		panic(err)
	}
}
