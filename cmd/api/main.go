package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/itayost/AmosKitchen-sub001/internal/app/api"
)

func main() {
	// Local development reads settings from a .env file when present.
	_ = godotenv.Load()
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("kitchen API failed: %v", err)
	}
}
