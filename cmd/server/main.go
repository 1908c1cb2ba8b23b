package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/soykat/vibely/backend/internal/router"
	"github.com/soykat/vibely/backend/pkg/config"
	"github.com/soykat/vibely/backend/pkg/firebase"
	"github.com/soykat/vibely/backend/validators"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	fbApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg.MongoDatabase, fbApp.AuthClient)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
