package invoice

import (
	"go.uber.org/fx"

	"github.com/camille-guillard/invoice-api/internal/invoice/render"
	"github.com/camille-guillard/invoice-api/internal/invoice/repository"
	"github.com/camille-guillard/invoice-api/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
