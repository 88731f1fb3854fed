package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/rackworks/catalog/internal/config"
	"github.com/rackworks/catalog/internal/migration"
	"github.com/rackworks/catalog/internal/observability"
	"github.com/rackworks/catalog/internal/server"
	"github.com/rackworks/catalog/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
