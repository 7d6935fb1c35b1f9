// @title           Invoice API
// @version         1.0
// @description     Invoicing service: clients, invoices and revenue reporting

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/camille-guillard/invoice-api/internal/client"
	"github.com/camille-guillard/invoice-api/internal/clock"
	"github.com/camille-guillard/invoice-api/internal/config"
	"github.com/camille-guillard/invoice-api/internal/invoice"
	"github.com/camille-guillard/invoice-api/internal/logger"
	"github.com/camille-guillard/invoice-api/internal/migration"
	"github.com/camille-guillard/invoice-api/internal/seed"
	"github.com/camille-guillard/invoice-api/internal/server"
	"github.com/camille-guillard/invoice-api/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		client.Module,
		invoice.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			if !cfg.IsProduction() && cfg.Bootstrap.SeedDemoClient {
				return seed.EnsureDemoClient(conn, node)
			}
			return nil
		}),

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
