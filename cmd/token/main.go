// Command token mints a bearer token for the API using the configured JWT secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"alliance-bank/config"
	"alliance-bank/internal/core/ports"
	"alliance-bank/internal/service"

	"github.com/google/uuid"
)

func main() {
	subject := flag.String("subject", "", "token subject (discord id or operator name)")
	role := flag.String("role", string(ports.RoleMember), "member, banker or admin")
	member := flag.String("member", "", "member id to bind (required for member tokens)")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("AB_CONFIG"))
	if err != nil {
		fail("failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		fail("jwt.secret is required")
	}
	if *subject == "" {
		fail("-subject is required")
	}

	r := ports.Role(*role)
	if !r.Valid() {
		fail("unknown role %q", *role)
	}

	var memberID *uuid.UUID
	if *member != "" {
		id, err := uuid.Parse(*member)
		if err != nil {
			fail("invalid -member: %v", err)
		}
		memberID = &id
	} else if r == ports.RoleMember {
		fail("-member is required for member tokens")
	}

	tokens := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	token, exp, err := tokens.Generate(*subject, r, memberID)
	if err != nil {
		fail("generating token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", exp.Format(time.RFC3339))
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
