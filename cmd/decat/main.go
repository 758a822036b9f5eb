package main

import (
	"context"
	"log"

	"github.com/asorokin/decat/internal/client"
	"github.com/asorokin/decat/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := client.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
