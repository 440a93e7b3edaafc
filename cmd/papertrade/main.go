package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"papertrade/internal/config"
	"papertrade/internal/marketdata"
	"papertrade/internal/observability"
	"papertrade/internal/repository"
	"papertrade/internal/server"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	var store server.Store
	if cfg.DatabaseURL != "" {
		db, err := repository.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		store = &db
		logger.Info("using postgres storage")
	} else {
		mem := repository.NewMemoryStore()
		for _, quote := range marketdata.DefaultStaticQuotes() {
			if err := mem.UpsertSymbol(quote.Symbol, quote.Name, quote, context.Background()); err != nil {
				log.Fatal(err)
			}
		}
		store = mem
		logger.Warn("no DATABASE_URL set, using in-memory storage")
	}

	providers := []marketdata.Provider{marketdata.NewYahooProvider()}
	if cfg.AlphaVantageAPIKey != "" {
		providers = append([]marketdata.Provider{
			marketdata.NewAlphaVantageProvider(cfg.AlphaVantageAPIKey),
		}, providers...)
	}
	providers = append(providers, marketdata.NewStaticProvider(marketdata.DefaultStaticQuotes()))

	quoteCfg := marketdata.DefaultServiceConfig()
	quoteCfg.CacheTTL = cfg.QuoteCacheTTL
	quotes, err := marketdata.NewService(quoteCfg, logger, providers...)
	if err != nil {
		log.Fatal(err)
	}

	serverCfg := server.DefaultConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	serverCfg.StartingCash = cfg.StartingCash
	srv := server.NewServer(serverCfg, store, quotes, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal(err)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatal(err)
		}
	}
}
