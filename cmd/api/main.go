package main

import (
	"log"
	"net/http"

	"labtrack-api/internal"
	"labtrack-api/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// Local development reads a .env file; missing is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	srv := internal.NewServer(cfg.DSN, cfg)

	log.Println("Starting LabTrack API server...")
	log.Printf("JWT Issuer: %s", cfg.JWTIssuer)
	log.Printf("JWT Audience: %s", cfg.JWTAudience)
	log.Printf("JWT Expiry: %v", cfg.JWTExpiry)
	log.Printf("Listening on %s", cfg.Addr)

	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Router))
}
