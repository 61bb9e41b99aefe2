// Command jobboardd serves the public job board: the listing pages and the
// application submission endpoint.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	jobboard "github.com/goliatone/go-jobboard"
	"github.com/goliatone/go-jobboard/pkg/config"
)

func main() {
	var (
		configFlag    = flag.String("config", "", "YAML configuration file")
		addrFlag      = flag.String("addr", "", "HTTP listen address (overrides config)")
		envFlag       = flag.String("env", ".env", "dotenv file loaded before config")
		shutdownGrace = flag.Duration("grace", 5*time.Second, "Shutdown grace period")
	)
	flag.Parse()

	if err := godotenv.Load(*envFlag); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	stack, err := jobboard.New(cfg)
	if err != nil {
		log.Fatalf("wire: %v", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: stack.Handler(),
	}

	log.Printf("listening on %s (company %s)", cfg.Server.Addr, cfg.Company.Slug)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
