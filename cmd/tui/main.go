package main

import (
	"context"
	"log"

	"taskflow/internal/client"
	"taskflow/internal/config"
	"taskflow/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	c := client.New(cfg.Client.BaseURL, cfg.Auth.APIKey)
	if err := tui.Run(context.Background(), c); err != nil {
		log.Fatalf("tui: %v", err)
	}
}
