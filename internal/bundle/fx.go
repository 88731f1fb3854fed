package bundle

import (
	"github.com/rackworks/catalog/internal/bundle/repository"
	"github.com/rackworks/catalog/internal/bundle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bundle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
