package rateplan

import (
	"github.com/rackworks/catalog/internal/rateplan/repository"
	"github.com/rackworks/catalog/internal/rateplan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rateplan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
