package templateattr

import (
	"github.com/rackworks/catalog/internal/templateattr/repository"
	"github.com/rackworks/catalog/internal/templateattr/service"
	"go.uber.org/fx"
)

var Module = fx.Module("templateattr.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
