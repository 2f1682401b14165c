package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/noteboard/noteboard/internal/analytics"
	"github.com/noteboard/noteboard/internal/analytics/config"
	"github.com/noteboard/noteboard/internal/buildinfo"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	_ = godotenv.Load()

	cfg := config.LoadConfig()

	app, err := analytics.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
