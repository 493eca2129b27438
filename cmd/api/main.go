package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/willowmind/companion-backend/internal/chart"
	"github.com/willowmind/companion-backend/internal/config"
	"github.com/willowmind/companion-backend/internal/handler"
	moodModel "github.com/willowmind/companion-backend/internal/model/mood"
	"github.com/willowmind/companion-backend/internal/service/ai"
	chatService "github.com/willowmind/companion-backend/internal/service/chat"
	"github.com/willowmind/companion-backend/internal/service/language"
	"github.com/willowmind/companion-backend/internal/service/media"
	"github.com/willowmind/companion-backend/internal/service/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.AI.Enabled() {
		log.Fatal("Ark credentials not configured, set ARK_API_KEY and ARK_MODEL")
	}
	aiService, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}
	log.Println("AI service initialized successfully")

	if !cfg.Media.Enabled() {
		log.Fatal("media credentials not configured, set MEDIA_API_KEY or OPENAI_API_KEY")
	}
	mediaClient := media.NewClient(cfg.Media)

	moodStore, closeStore, err := openMoodStore(cfg.Mood)
	if err != nil {
		log.Fatalf("failed to open mood store: %v", err)
	}
	defer closeStore()
	log.Printf("mood store ready, driver=%s path=%s", cfg.Mood.Driver, cfg.Mood.Path)

	trendRenderer, err := chart.NewTrendRenderer(cfg.Media.Dir, cfg.Chart.FontPath)
	if err != nil {
		log.Fatalf("failed to initialize trend renderer: %v", err)
	}

	renderer, err := chatService.NewRenderer(mediaClient, mediaClient, language.Detect, cfg.Media.Dir)
	if err != nil {
		log.Fatalf("failed to initialize response renderer: %v", err)
	}

	dispatcher := chatService.NewDispatcher(
		aiService,
		chatService.NewExtractor(mediaClient),
		renderer,
		moodStore,
		scheduler.NewService(),
		trendRenderer,
		language.Detect,
	)

	router := handler.NewRouter(dispatcher, moodStore, trendRenderer, cfg.Media.Dir)

	startServer(ctx, cfg.Server, router)
}

func openMoodStore(cfg config.MoodConfig) (moodModel.Store, func(), error) {
	if cfg.Driver == "sqlite" {
		store, err := moodModel.OpenSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return moodModel.NewFileStore(cfg.Path), func() {}, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("WillowMind companion backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
