package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rrens/code-search-web/internal/api"
	"github.com/Rrens/code-search-web/internal/api/middleware"
	"github.com/Rrens/code-search-web/internal/api/view"
	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/Rrens/code-search-web/internal/config"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/logging"
	"github.com/Rrens/code-search-web/internal/security"
	"github.com/Rrens/code-search-web/internal/service"
	"github.com/Rrens/code-search-web/internal/session"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	envLoaded := ""
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			envLoaded = p
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logCloser, err := logging.Setup(cfg.Logging, os.Getenv("ENV") == "production")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if envLoaded != "" {
		log.Info().Str("path", envLoaded).Msg("Loaded .env")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Session.Driver).
		Bool("trust_proxy", cfg.Server.TrustProxy).
		Msg("Starting code search web server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Session.Driver).Msg("Failed to open storage")
	}
	defer store.Close()
	go prune(ctx, store.storage, time.Hour)

	secret := cfg.Session.Secret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("session.secret is empty, using a random one; browsers must sign in again after a restart")
	}
	signer, err := security.NewCookieSigner(secret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create cookie signer")
	}

	var storage domain.Storage = store.storage
	if cfg.Session.EncryptValues {
		sealer, err := security.NewSealer(secret)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage sealer")
		}
		storage = session.NewSealedStorage(storage, sealer)
	}

	var inspector *security.TokenInspector
	if cfg.Auth.CheckTokenExpiry {
		inspector = security.NewTokenInspector(30 * time.Second)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	client := backend.NewClient(cfg.Backend.APIURL, cfg.Backend.Timeout)
	log.Info().Str("url", client.BaseURL()).Dur("timeout", cfg.Backend.Timeout).Msg("Using code search backend")

	var loginLimiter middleware.Limiter
	if cfg.Security.RateLimit.Enabled {
		loginLimiter = store.limiter(cfg.Security.RateLimit)
	}

	router := api.NewRouter(api.Dependencies{
		Storage: storage,
		Sessions: session.NewManager(storage, signer, session.ManagerOptions{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
		}),
		Auth:         service.NewAuthService(client, inspector),
		Chats:        service.NewChatService(client),
		Search:       service.NewSearchService(client),
		Renderer:     renderer,
		LoginLimiter: loginLimiter,
		TrustProxy:   cfg.Server.TrustProxy,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate session secret")
	}
	return hex.EncodeToString(b)
}

// pruner is implemented by the SQL storages, which keep expired rows until
// they are deleted.
type pruner interface {
	Prune(ctx context.Context) (int64, error)
}

func prune(ctx context.Context, storage domain.Storage, interval time.Duration) {
	p, ok := storage.(pruner)
	if !ok {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := p.Prune(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to prune expired browser storage")
				continue
			}
			if n > 0 {
				log.Debug().Int64("rows", n).Msg("Pruned expired browser storage")
			}
		case <-ctx.Done():
			return
		}
	}
}
