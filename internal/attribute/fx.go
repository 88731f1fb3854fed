package attribute

import (
	"github.com/rackworks/catalog/internal/attribute/repository"
	"github.com/rackworks/catalog/internal/attribute/service"
	"go.uber.org/fx"
)

var Module = fx.Module("attribute.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
