package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"slide-presenter/internal/config"
	"slide-presenter/internal/db"
	"slide-presenter/internal/handlers"
	"slide-presenter/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := db.InitDatabase(cfg.HistoryDBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize services
	deckService := services.NewDeckService(cfg.RootDir)
	historyService := services.NewHistoryService(db.DB)
	remoteService := services.NewRemoteService()
	defer remoteService.CloseAll()

	// Initialize handlers
	staticHandler := handlers.NewStaticHandler(cfg.RootDir)
	presenterHandler := handlers.NewPresenterHandler(deckService, historyService)
	remoteHandler := handlers.NewRemoteHandler(remoteService)

	// Setup routes
	router := handlers.SetupRoutes(staticHandler, presenterHandler, remoteHandler)

	// The manager owns the server lifecycle; a fresh instance is built
	// after every stop so a workspace change can supply a new root.
	manager := services.NewManager(func() (*services.PresentationServer, error) {
		return services.NewPresentationServer(services.ServerConfig{
			Host:           cfg.Host,
			PortRangeStart: cfg.PortRangeStart,
			PortRangeSize:  cfg.PortRangeSize,
			RootDir:        cfg.RootDir,
			Handler:        router,
		}), nil
	})

	port, err := manager.EnsureRunning()
	if err != nil {
		log.Fatalf("Failed to start presentation server: %v", err)
	}
	defer manager.StopIfRunning()

	log.Printf("Serving decks from %s", cfg.RootDir)
	log.Printf("Open http://%s:%d/present/<deckId> to present a deck", cfg.Host, port)

	// Block until shutdown is requested
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down")
}
