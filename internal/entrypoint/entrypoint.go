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

	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/diagnostics"
	http_controllers "github.com/mrlokans/bookclub/internal/http"
	"github.com/mrlokans/bookclub/internal/scheduler"
	"github.com/mrlokans/bookclub/internal/search"
	"github.com/mrlokans/bookclub/internal/session"
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is syscall.SIGINT, plain kill sends SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	// In-flight lookups are cancelled only once no handler can start new ones.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// NewSink builds the failure sink shared by all searchers: the standard
// logger plus an in-memory ring of recent failures.
func NewSink(cfg config.Search) (diagnostics.Sink, *diagnostics.Ring) {
	ring := diagnostics.NewRing(cfg.DiagnosticsSize)
	return diagnostics.Multi{diagnostics.LogSink{}, ring}, ring
}

// ControllerOptions translates the search configuration into controller options.
func ControllerOptions(cfg config.Search) []search.Option {
	var opts []search.Option
	if cfg.Debounce > 0 {
		opts = append(opts, search.WithDebounce(cfg.Debounce))
	}
	return opts
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookclub v%s", version)

	if cfg.Catalog.APIKey == "" {
		log.Printf("WARNING: Google Books API key is not set. Lookups run with the anonymous quota. Set 'GOOGLE_BOOKS_API_KEY' environment variable to use your own.")
	}

	client := catalog.NewGoogleBooksClient(cfg.Catalog)
	sink, ring := NewSink(cfg.Search)
	opts := ControllerOptions(cfg.Search)

	registry := search.NewRegistry(func() *search.Controller {
		return search.NewController(client, sink, opts...)
	}, cfg.Search.IdleTimeout)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	janitor := scheduler.NewJanitor(registry, cfg.Search.JanitorSchedule)
	if err := janitor.Start(janitorCtx); err != nil {
		log.Fatalf("Failed to start janitor: %v", err)
	}

	var csrfSecret []byte
	if cfg.Sessions.CSRFSecret != "" {
		csrfSecret = session.DecodeSecret(cfg.Sessions.CSRFSecret)
	} else {
		secret, err := session.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret = session.DecodeSecret(secret)
		log.Printf("Generated CSRF secret (set CSRF_SECRET to keep forms valid across restarts)")
	}

	routerCfg := http_controllers.RouterConfig{
		Registry:         registry,
		Sessions:         session.NewManager(cfg.Sessions),
		Catalog:          client,
		Sink:             sink,
		Diagnostics:      ring,
		CSRFSecret:       csrfSecret,
		SecureCookies:    cfg.Sessions.SecureCookies,
		Version:          version,
		APIKeyConfigured: cfg.Catalog.APIKey != "",
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		janitor.Stop()
		registry.Close()
	}

	Serve(router, cfg, onShutdown)
}
