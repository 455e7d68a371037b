package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamerhub/marketplace/internal/auth"
	"github.com/gamerhub/marketplace/internal/config"
	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/observability"
	"github.com/gamerhub/marketplace/internal/persistence"
	"github.com/gamerhub/marketplace/internal/sessionclient"
)

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			if dir == "" {
				dir = cfg.Postgres.MigrationsDir
			}
			pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pg.Close()
			return persistence.RunMigrations(cmd.Context(), pg.PoolHandle(), dir, logger)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Migrations directory (defaults to POSTGRES_MIGRATIONS_DIR)")
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		id       string
		username string
		email    string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a session token signed with the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return errors.New("--id is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL()
			}
			codec := auth.NewCodec(cfg.Auth.JWTSecret, ttl)
			token, exp, err := codec.Encode(domain.Identity{ID: id, Username: username, Email: email})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Subject identifier")
	cmd.Flags().StringVar(&username, "usuario", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to AUTH_ACCESS_TOKEN_TTL_MINUTES)")
	return cmd
}

func whoamiCmd() *cobra.Command {
	var (
		baseURL string
		token   string
		logout  bool
	)

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Ask a running server who the given token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if baseURL != "" {
				cfg.Session.BaseURL = baseURL
			}
			if token == "" {
				token = os.Getenv("SESSION_TOKEN")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.Session.Timeout())
			defer cancel()

			provider := sessionclient.New(ctx, cfg.Session, zap.NewNop(), sessionclient.Options{Token: token})
			if err := provider.Wait(ctx); err != nil {
				return err
			}
			if logout {
				provider.Logout(ctx)
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			out.SetIndent("", "  ")
			return out.Encode(map[string]any{"user": provider.User()})
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Server base URL (defaults to SESSION_BASE_URL)")
	cmd.Flags().StringVar(&token, "token", "", "Session token (defaults to SESSION_TOKEN)")
	cmd.Flags().BoolVar(&logout, "logout", false, "Log out after resolving the identity")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marketplace %s (%s) %s %s/%s\n",
				version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
