package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sharescribe/internal/auth"
	"sharescribe/internal/config"
)

var (
	tokenSubject string
	tokenEmail   string
	tokenTTL     time.Duration
)

// tokenCmd mints a session token signed with AUTH_JWT_SECRET, for local development.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development session token",
	Example: `  sharescribe token --sub 0f5b2c8e-3c1d-4b7a-9e2f-2a6c1d8e4b90 --email dev@example.com
  curl -H "Authorization: Bearer $(sharescribe token --sub ...)" localhost:8080/api/me`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		if cfg.Auth.JWTSecret == "" {
			return errors.New("AUTH_JWT_SECRET is not set")
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = time.Duration(cfg.Auth.TokenTTLSec) * time.Second
		}

		tok, err := auth.NewJWT(cfg.Auth.JWTSecret, ttl).Issue(tokenSubject, tokenEmail)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "account id (JWT subject)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "account email")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL_SEC)")
	_ = tokenCmd.MarkFlagRequired("sub")
}
