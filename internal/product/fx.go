package product

import (
	"github.com/rackworks/catalog/internal/product/repository"
	"github.com/rackworks/catalog/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
