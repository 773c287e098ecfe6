package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Seth7171/TaleWeaver-sub000/internal/config"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database/pages"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database/settings"
	http_controllers "github.com/Seth7171/TaleWeaver-sub000/internal/http"
	"github.com/Seth7171/TaleWeaver-sub000/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then shut down within the configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop taking requests before the engine goes away
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting TaleWeaver v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	pageRepo := pages.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)

	engine, err := NewEngine(cfg, pageRepo, settingsRepo)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := engine.Driver.Start(ctx); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	autoplay := scheduler.NewAutoplayScheduler(engine.Driver, cfg.AutoplayConfig())
	autoplay.SetViewStore(settingsRepo)
	if err := autoplay.Start(ctx); err != nil {
		log.Printf("Warning: autoplay disabled: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Driver:   engine.Driver,
		Pages:    pageRepo,
		Settings: settingsRepo,
		Database: db,
		Autoplay: autoplay,
		TurnTime: cfg.Book.TurnTime,
		OpenTime: cfg.Book.OpenTime,
		Version:  version,
	})

	onShutdown := func(ctx context.Context) {
		autoplay.Stop()

		snap, err := engine.Driver.Snapshot(ctx)
		if err != nil {
			log.Printf("Failed to read book before shutdown: %v", err)
		} else if err := PersistView(settingsRepo, snap); err != nil {
			log.Printf("Failed to persist book view: %v", err)
		} else {
			log.Printf("Persisted book view: %s, page %d", snap.State, snap.PageNumber)
		}

		engine.Driver.Stop()
	}

	Serve(router, cfg, onShutdown)
}
