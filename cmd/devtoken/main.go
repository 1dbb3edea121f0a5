// Command devtoken mints a bearer token for calling the IdeaForge API during
// local development. It signs with the same secret and lifetime as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/ideaforge-api/internal/config"
	"github.com/phrazzld/ideaforge-api/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "local-dev", "Subject (client identifier) to embed in the token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		slog.Error("Failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	token, err := jwtService.GenerateToken(context.Background(), *subject)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
