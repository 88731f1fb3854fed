package productattr

import (
	"github.com/rackworks/catalog/internal/productattr/repository"
	"github.com/rackworks/catalog/internal/productattr/service"
	"go.uber.org/fx"
)

var Module = fx.Module("productattr.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
