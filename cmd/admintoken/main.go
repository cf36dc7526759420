// Command admintoken mints a bearer token for the admin lead inbox.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/octobees/sitegen/internal/auth"
	"github.com/octobees/sitegen/internal/config"
)

func main() {
	subject := flag.String("subject", "", "operator identifier stored in the token (required)")
	role := flag.String("role", auth.RoleAdmin, "role granted by the token")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_TTL)")
	flag.Parse()

	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}

	secret, lifetime := config.LoadJWT()
	if *ttl > 0 {
		lifetime = *ttl
	}

	manager := auth.NewJWTManager(secret, lifetime)
	token, err := manager.GenerateToken(*subject, *role)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
