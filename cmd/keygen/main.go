// Command keygen mints service tokens for the API's mutating routes and
// bcrypt hashes for the treasury admin key.
//
// Usage:
//
//	keygen -service billing-portal            # prints a signed JWT
//	keygen -service billing-portal -ttl 720h  # with a custom expiry
//	keygen -admin-key                         # prints a fresh key and its hash
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"caresure/internal/platform/config"
	"caresure/internal/platform/middleware"
	"caresure/pkg/secrets"
)

func main() {
	service := flag.String("service", "", "service name to mint a token for")
	ttl := flag.Duration("ttl", 365*24*time.Hour, "token lifetime")
	adminKey := flag.Bool("admin-key", false, "generate an admin key and its bcrypt hash")
	flag.Parse()

	switch {
	case *adminKey:
		if err := printAdminKey(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case *service != "":
		if err := printServiceToken(*service, *ttl); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printServiceToken(service string, ttl time.Duration) error {
	cfg := config.FromEnv()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.ServiceClaims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   service,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString([]byte(cfg.JWTSigningKey))
	if err != nil {
		return err
	}
	fmt.Println(signed)
	return nil
}

func printAdminKey() error {
	key, err := secrets.Generate()
	if err != nil {
		return err
	}
	hash, err := secrets.Hash(key)
	if err != nil {
		return err
	}
	fmt.Println("admin key: ", key)
	fmt.Println("hash (set ADMIN_KEY_HASH):", hash)
	return nil
}
