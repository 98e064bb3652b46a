package main

import (
	"context"
	"log"

	"github.com/kinshipapp/kinship/internal/server"
	"github.com/kinshipapp/kinship/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
