package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/diamondstore/internal/server"
	"github.com/dmitrijs2005/diamondstore/internal/server/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		os.Exit(1)
	}
}
