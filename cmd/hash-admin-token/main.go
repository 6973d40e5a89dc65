package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/playmatatu/cuesim/internal/admin"
)

// Prints the bcrypt hash of ADMIN_TOKEN for use as ADMIN_TOKEN_HASH.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	adminToken := os.Getenv("ADMIN_TOKEN")
	if len(os.Args) > 1 {
		adminToken = os.Args[1]
	}
	if adminToken == "" {
		log.Fatal("ADMIN_TOKEN not set (or pass the token as the first argument)")
	}

	hash, err := admin.HashAdminToken(adminToken)
	if err != nil {
		log.Fatalf("Failed to hash admin token: %v", err)
	}
	fmt.Println(hash)
}
