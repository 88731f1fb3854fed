package dedicatedhost

import (
	"github.com/rackworks/catalog/internal/dedicatedhost/repository"
	"github.com/rackworks/catalog/internal/dedicatedhost/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dedicatedhost.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
