package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"labtrack-api/internal/auth"
	"labtrack-api/internal/config"

	"github.com/google/uuid"
)

func main() {
	var (
		userID     = flag.String("user", "", "User UUID (random when omitted)")
		email      = flag.String("email", "dev@example.com", "User email")
		name       = flag.String("name", "", "User full name (optional)")
		superuser  = flag.Bool("superuser", false, "Issue a superuser token")
		expiryMins = flag.Int("expiry", 1440, "Token expiry in minutes (default: 24 hours)")
		secret     = flag.String("secret", "", "JWT secret (overrides JWT_SECRET env var)")
		issuer     = flag.String("issuer", "", "JWT issuer (overrides JWT_ISS env var)")
		audience   = flag.String("audience", "", "JWT audience (overrides JWT_AUD env var)")
	)
	flag.Parse()

	cfg := config.Load()

	if *secret != "" {
		cfg.JWTSecret = *secret
	}
	if *issuer != "" {
		cfg.JWTIssuer = *issuer
	}
	if *audience != "" {
		cfg.JWTAudience = *audience
	}

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			log.Fatalf("Invalid user UUID: %v", err)
		}
		id = parsed
	}

	var fullName *string
	if *name != "" {
		fullName = name
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, time.Duration(*expiryMins)*time.Minute)
	if err := jwtManager.ValidateConfig(); err != nil {
		log.Fatalf("JWT configuration error: %v", err)
	}

	token, err := jwtManager.GenerateToken(id, *email, fullName, *superuser)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("JWT Token generated successfully!\n\n")
	fmt.Printf("User ID: %s\n", id)
	fmt.Printf("Email: %s\n", *email)
	fmt.Printf("Superuser: %t\n", *superuser)
	fmt.Printf("Expiry: %d minutes\n", *expiryMins)
	fmt.Printf("Issuer: %s\n", cfg.JWTIssuer)
	fmt.Printf("Audience: %s\n", cfg.JWTAudience)
	fmt.Printf("\nToken:\n%s\n\n", token)

	fmt.Printf("Usage example:\n")
	fmt.Printf("curl -H \"Authorization: Bearer %s\" http://localhost:8080/items\n", token)
}
