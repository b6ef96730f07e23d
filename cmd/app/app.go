package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/okerssen/inventory-api/internal/api"
	"github.com/okerssen/inventory-api/internal/config"
	"github.com/okerssen/inventory-api/internal/logger"
	"github.com/okerssen/inventory-api/internal/repository"
	"github.com/okerssen/inventory-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	path := conf.Inventory.Path
	if envPath := os.Getenv("INVENTORY_PATH"); envPath != "" {
		path = envPath
	}

	store := repository.NewInventoryStore(dao.NewInventoryFile(path))
	if err = store.Load(); err != nil {
		return fmt.Errorf("failed to load inventory -> %w", err)
	}
	zap.L().Info(fmt.Sprintf("loaded %v items from %v", store.Len(), path))

	s := api.NewServer(conf, store)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
