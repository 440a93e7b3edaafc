package main

import (
	"context"
	"log"

	"papertrade/internal/config"
	"papertrade/internal/marketdata"
	"papertrade/internal/repository"

	"github.com/schollz/progressbar/v3"
)

// Seeds the symbols table with the demo quote universe.
func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set to seed the database")
	}

	db, err := repository.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	quotes := marketdata.DefaultStaticQuotes()
	bar := initProgressBar(len(quotes))

	ctx := context.Background()
	for _, quote := range quotes {
		if err := db.UpsertSymbol(quote.Symbol, quote.Name, quote, ctx); err != nil {
			log.Fatal(err)
		}
		bar.Add(1)
	}
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Seeding symbols..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
