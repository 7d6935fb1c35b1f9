// Package server exposes the use cases over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/camille-guillard/invoice-api/internal/client/domain"
	"github.com/camille-guillard/invoice-api/internal/config"
	invoicedomain "github.com/camille-guillard/invoice-api/internal/invoice/domain"
	"github.com/camille-guillard/invoice-api/internal/invoice/render"
	"github.com/camille-guillard/invoice-api/internal/logger"
)

type ServerParam struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	ClientSvc  clientdomain.Service
	InvoiceSvc invoicedomain.Service
	Renderer   render.Renderer
}

type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	engine     *gin.Engine
	clientSvc  clientdomain.Service
	invoiceSvc invoicedomain.Service
	renderer   render.Renderer
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log), gin.Recovery())
	return engine
}

func NewServer(p ServerParam, engine *gin.Engine) *Server {
	return &Server{
		cfg: p.Cfg,
		log: p.Log.Named("server"),
		db:  p.DB,

		engine:     engine,
		clientSvc:  p.ClientSvc,
		invoiceSvc: p.InvoiceSvc,
		renderer:   p.Renderer,
	}
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", s.Healthz)

	api := s.engine.Group("/api")

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/revenue", s.GetRevenue)
	api.GET("/invoices/:id", s.GetInvoice)
	api.GET("/invoices/:id/html", s.GetInvoiceHTML)
	api.POST("/invoices/:id/pay", s.PayInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	api.POST("/clients", s.CreateClient)
	api.GET("/clients", s.ListClients)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) Healthz(c *gin.Context) {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			if err := sqlDB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP binds the engine to the configured address under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
