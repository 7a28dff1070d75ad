// seed aplica las migraciones y, si se indica un CSV, carga productos al catálogo.
//
// Uso: go run ./cmd/seed [catalogo.csv]
// Columnas: name,sku,stock,cost,price. El archivo puede venir en UTF-8 o ISO-8859-1
// (exportaciones de Excel en español).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-pos/internal/domain/repository"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-pos/pkg/config"
	"github.com/jhoicas/tienda-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(os.Args) < 2 {
		log.Info().Msg("sin CSV: solo migraciones")
		return
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	products, err := parseCatalog(raw)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	// Todo o nada: un error en cualquier fila revierte la carga.
	now := time.Now()
	err = postgres.NewTxRunner(pool).RunCatalog(ctx, func(repo repository.ProductRepository) error {
		for _, p := range products {
			p.ID = uuid.New().String()
			p.CreatedAt, p.UpdatedAt = now, now
			if err := repo.Create(ctx, p); err != nil {
				return fmt.Errorf("producto %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cargar productos")
	}
	log.Info().Int("productos", len(products)).Str("archivo", os.Args[1]).Msg("catálogo cargado")
}
