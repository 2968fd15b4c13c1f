// Command devtoken prints a signed bearer token for local development.
//
//	go run ./cmd/devtoken -sub user-1 -email ada@example.com -name Ada
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/domain"
)

func main() {
	sub := flag.String("sub", "dev-user", "user id (sub claim)")
	email := flag.String("email", "dev@example.com", "email claim")
	name := flag.String("name", "", "display name claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "refusing to issue tokens in production")
		os.Exit(1)
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(&domain.Identity{UserID: *sub, Email: *email, DisplayName: *name}, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
