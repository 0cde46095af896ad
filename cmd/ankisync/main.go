package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/ankisync/internal/sync"
	"github.com/dmitrijs2005/ankisync/internal/sync/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app, err := sync.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
