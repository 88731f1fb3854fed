package template

import (
	"github.com/rackworks/catalog/internal/template/repository"
	"github.com/rackworks/catalog/internal/template/service"
	"go.uber.org/fx"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
