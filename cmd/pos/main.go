// Comando pos: pantalla de terminal para cargar ventas contra la base de la tienda.
package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-pos/internal/interfaces/tui"
	"github.com/jhoicas/tienda-pos/pkg/config"
	"github.com/jhoicas/tienda-pos/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pos:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	// stdout pertenece a la pantalla: los logs van a archivo.
	log, closer, err := logger.NewFile(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	notifier := &tui.Notifier{}
	session := sale.NewEntrySession(
		postgres.NewProductRepository(pool),
		postgres.NewSaleRepository(pool),
		cfg.Cart.Debounce(),
		notifier.Deliver,
		log.Zerolog(),
	)
	defer session.Close()

	prog := tea.NewProgram(tui.NewModel(session, cfg.App.Currency), tea.WithAltScreen())
	notifier.Attach(prog)

	log.Info().Str("app", cfg.App.Name).Msg("pantalla de venta iniciada")
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("pantalla: %w", err)
	}
	log.Info().Msg("pantalla de venta cerrada")
	return nil
}
