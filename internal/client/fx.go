package client

import (
	"go.uber.org/fx"

	"github.com/camille-guillard/invoice-api/internal/client/service"
)

var Module = fx.Module("client.service",
	fx.Provide(service.NewService),
)
