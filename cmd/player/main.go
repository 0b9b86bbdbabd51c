package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/chorus/internal/adapters/remote"
	"github.com/ewilliams-labs/chorus/internal/adapters/rest"
	"github.com/ewilliams-labs/chorus/internal/adapters/speaker"
	"github.com/ewilliams-labs/chorus/internal/adapters/sqlite"
	"github.com/ewilliams-labs/chorus/internal/catalog"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
	"github.com/ewilliams-labs/chorus/internal/core/services"
	"github.com/ewilliams-labs/chorus/internal/worker"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	addr := envOr("CHORUS_ADDR", ":8080")
	dbPath := envOr("CHORUS_DB", "chorus.db")

	// Driven adapters first: storage, catalog, audio output.
	store, err := sqlite.NewStore(dbPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer store.Close()

	var cat ports.Catalog = catalog.Static{}
	if baseURL := os.Getenv("CHORUS_CATALOG_URL"); baseURL != "" {
		var creds *clientcredentials.Config
		clientID := os.Getenv("CHORUS_CATALOG_CLIENT_ID")
		clientSecret := os.Getenv("CHORUS_CATALOG_CLIENT_SECRET")
		if clientID != "" && clientSecret != "" {
			creds = &clientcredentials.Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenURL:     baseURL + "/oauth/token",
			}
		}
		cat = remote.NewClient(baseURL, creds)
	}

	tracks, err := cat.Tracks(context.Background())
	if err != nil {
		log.Printf("WARN main: catalog unavailable, starting empty: %v", err)
	}

	pool := worker.NewPool(nil, 100, 8)
	pool.Start(2)
	defer pool.Stop()

	if !speaker.AudioAvailable {
		log.Println("WARN main: no audio output in this build; start requests will be refused")
	}
	player := speaker.NewPlayer(pool.Fetch)

	// Core state containers, with the adapters injected.
	engine := services.NewEngine(player, services.WithPrefetcher(pool))
	defer engine.Close()
	library := services.NewLibrary(store)
	search := services.NewSearch(tracks, store)
	defer search.Dispose()

	handler := rest.NewHandler(engine, library, search, tracks)

	log.Printf("chorus player core listening on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
