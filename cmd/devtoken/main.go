package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/yukselticaret/trendyshop-backend/pkg/auth"
	"github.com/yukselticaret/trendyshop-backend/pkg/config"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

// devtoken prints a Supabase-shaped access token signed with the local
// project secret so the API can be exercised without a Supabase login.
func main() {
	logg := logger.New(logger.Options{ServiceName: "devtoken"})
	_ = godotenv.Load()

	subject := flag.String("sub", "", "user id (defaults to a random uuid)")
	email := flag.String("email", "dev@trendyshop.local", "email claim")
	admin := flag.Bool("admin", false, "grant the admin role")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		fmt.Fprintln(os.Stderr, "devtoken is disabled in prod")
		os.Exit(1)
	}

	if *subject == "" {
		*subject = uuid.NewString()
	}
	payload := auth.AccessTokenPayload{Subject: *subject, Email: *email}
	if *admin {
		payload.AdminRole = cfg.Supabase.AdminRole
	}

	token, err := auth.MintAccessToken(cfg.Supabase, time.Now(), *ttl, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
