package baremetal

import (
	"github.com/rackworks/catalog/internal/baremetal/repository"
	"github.com/rackworks/catalog/internal/baremetal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("baremetal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
