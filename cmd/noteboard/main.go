package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/noteboard/noteboard/internal/buildinfo"
	"github.com/noteboard/noteboard/internal/client/cli"
	"github.com/noteboard/noteboard/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// Optional .env next to the binary; ignored when absent.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
