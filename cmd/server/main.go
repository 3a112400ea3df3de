/*
main.go - Holiday engine server entry point

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open the SQLite store and migrate the schema
  3. Build the API handler and mirror the rule catalog into the
     rule_versions audit table
  4. Serve until SIGINT/SIGTERM, then drain for up to 30s

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: holidays.db);
           ":memory:" runs without a file

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Persistence layer
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/koyomi/holiday-engine/api"
	"github.com/koyomi/holiday-engine/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "holidays.db", "SQLite database path")
	flag.Parse()

	if err := run(*port, *dbPath); err != nil {
		log.Fatal(err)
	}
}

func run(port int, dbPath string) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	handler := api.NewHandler(store)

	// Mirror the catalog's amendment rows into the database so the
	// Act's legal history can be inspected with plain SQL.
	if err := handler.SeedRuleAudit(context.Background()); err != nil {
		log.Printf("Warning: Failed to seed rule audit table: %v", err)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Holiday engine serving on http://localhost:%d/api", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
