//go:build ignore

// This script prints random secrets for the balance service .env file.
// Run with: go run scripts/generate_keys.go [-api-keys 2]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func main() {
	apiKeyCount := flag.Int("api-keys", 1, "number of API keys to generate")
	flag.Parse()

	// 48 bytes comfortably clears the 32-byte minimum the service checks for
	jwtSecret, err := generateSecureKey(48)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT secret: %v\n", err)
		os.Exit(1)
	}

	apiKeys := make([]string, 0, *apiKeyCount)
	for i := 0; i < *apiKeyCount; i++ {
		key, err := generateSecureKey(24)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating API key: %v\n", err)
			os.Exit(1)
		}
		apiKeys = append(apiKeys, key)
	}

	fmt.Println("# Balance service secrets")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Println()
	fmt.Println("# API keys guard /api when JWT auth is off")
	fmt.Printf("API_KEYS=%s\n", strings.Join(apiKeys, ","))
}
