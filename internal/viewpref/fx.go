package viewpref

import "go.uber.org/fx"

var Module = fx.Module("viewpref.service",
	fx.Provide(NewGormKV),
	fx.Provide(NewService),
)
