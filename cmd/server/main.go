package main

import (
	"context"
	"log"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/server"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
