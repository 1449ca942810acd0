package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Prints a bcrypt hash for AUTH_HOSTPASSWORDHASH.
// Usage: go run ./cmd/scripts <password>, or set HOST_PASSWORD in .env
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	password := os.Getenv("HOST_PASSWORD")
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "password is required as an argument or HOST_PASSWORD")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
