package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-admin-secret/main.go <secret>")
		fmt.Println("Example: go run cmd/hash-admin-secret/main.go \"shop-owner-secret\"")
		os.Exit(1)
	}

	secret := os.Args[1]
	if len(secret) < 12 {
		fmt.Fprintln(os.Stderr, "Secret must be at least 12 characters")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Admin secret hashed.\n\n")
	fmt.Printf("Add this to your environment:\n")
	fmt.Printf("ADMIN_SECRET_HASH='%s'\n", hash)
	fmt.Printf("\nSend the plain secret in the %s header:\n", "X-Admin-Secret")
	fmt.Printf("X-Admin-Secret: %s\n", secret)
}
