package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	v1 "github.com/okerssen/inventory-api/internal/api/handler/v1"
	"github.com/okerssen/inventory-api/internal/api/middleware"
	"github.com/okerssen/inventory-api/internal/config"
	"github.com/okerssen/inventory-api/internal/repository"
	"github.com/okerssen/inventory-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, store *repository.InventoryStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	inventoryHandler := s.initInventoryHandler(store)
	s.MountHandlers(inventoryHandler)

	return s
}

func (s *Server) initInventoryHandler(store *repository.InventoryStore) *v1.InventoryHandler {
	svc := service.NewInventoryService(store)
	handler := v1.NewInventoryHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(inventoryHandler *v1.InventoryHandler) {
	const basePath = "/api/v1"

	items := s.Router.Group(basePath)
	{
		items.GET("/items", inventoryHandler.HandleListItems)
		items.GET("/items/lookup", inventoryHandler.HandleLookupItem)
		items.POST("/items", inventoryHandler.HandleAddItem)
		items.PUT("/items/:position", inventoryHandler.HandleUpdateItem)
		items.DELETE("/items/:position", inventoryHandler.HandleDeleteItem)
		items.POST("/items/import", inventoryHandler.HandleImportBatch)
		items.POST("/items/undo", inventoryHandler.HandleUndo)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
}
