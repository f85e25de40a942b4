// Package main mints bearer tokens signed with the configured JWT secret.
// Accounts live outside this service; the token is the only credential it checks.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"devinventory/internal/config"
	"devinventory/internal/domain/auth"
	"devinventory/internal/infrastructure/http/v1/middleware"
)

func main() {
	userID := flag.String("user", "dev", "user id (token subject)")
	email := flag.String("email", "", "user email")
	perms := flag.String("perms", strings.Join([]string{
		middleware.PermDeviceRead,
		middleware.PermDeviceWrite,
		middleware.PermCatalogRead,
	}, ","), "comma-separated permissions")
	admin := flag.Bool("admin", false, "grant every permission")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to the configured access token TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	jwtCfg := auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.AccessTokenTTL,
	}
	if *ttl > 0 {
		jwtCfg.AccessTokenTTL = *ttl
	}

	token, expiresAt, err := auth.NewJWTService(jwtCfg).GenerateAccessToken(auth.TokenRequest{
		UserID:      *userID,
		Email:       *email,
		Permissions: splitList(*perms),
		IsAdmin:     *admin,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
