package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/noteboard/noteboard/internal/buildinfo"
	"github.com/noteboard/noteboard/internal/identity"
	"github.com/noteboard/noteboard/internal/identity/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	_ = godotenv.Load()

	cfg := config.LoadConfig()

	app, err := identity.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
