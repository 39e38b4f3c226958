package main

import (
	"fmt"
	"time"

	"talent-hive/internal/config"
	"talent-hive/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Mint an admin access token for the refresh endpoint",
	RunE:  runAdminToken,
}

var (
	adminTokenSubject string
	adminTokenTTL     time.Duration
)

func init() {
	adminTokenCmd.Flags().StringVarP(&adminTokenSubject, "subject", "s", "operator", "Token subject")
	adminTokenCmd.Flags().DurationVar(&adminTokenTTL, "ttl", 0, "Token lifetime (defaults to JWT_ACCESS_EXPIRES_IN_SECONDS)")
	rootCmd.AddCommand(adminTokenCmd)
}

func runAdminToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is not configured")
	}

	ttl := cfg.JWT.AccessExpiresIn
	if adminTokenTTL > 0 {
		ttl = adminTokenTTL
	}

	tok, err := jwt.NewHMACService(cfg.JWT.AccessSecret, ttl).GenerateAccessToken(adminTokenSubject, jwt.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
