// Generates a signed development JWT for exercising the API locally.
//
// Usage:
//
//	go run ./scripts/gentoken <user-id> [email]
package main

import (
	"fmt"
	"log"
	"os"

	"codeberg.org/papermind/server/internal/auth"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: gentoken <user-id> [email]")
	}

	userID := os.Args[1]

	email := "dev@example.com"
	if len(os.Args) > 2 {
		email = os.Args[2]
	}

	token, err := auth.GenerateJWT(userID, email)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("Test JWT token:\n%s\n\n", token)
	fmt.Printf("Export it for the TUI and curl:\nexport PAPERMIND_API_TOKEN=\"%s\"\n", token)
}
