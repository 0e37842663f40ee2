package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crm-platform/internal/auth"
	"crm-platform/internal/config"
	"crm-platform/internal/rbac"
)

var (
	tokenRole   string
	tokenUser   string
	tokenTenant string
	tokenTTL    time.Duration

	// loadConfig is swapped in tests.
	loadConfig = config.Load
)

// NewTokenCmd creates the token command. Admin accounts have no password login;
// operators mint admin tokens here with the API's JWT settings.
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token",
		Long: `Mint a signed access token using JWT_SECRET, JWT_ISSUER and JWT_AUDIENCE
from the environment (or .env).

Examples:
  crmctl token --role admin --user ops-1 --tenant acme
  crmctl token --role employee --user e7 --tenant acme --ttl 1h`,
		RunE: runToken,
	}
	cmd.Flags().StringVar(&tokenRole, "role", rbac.RoleAdmin, "Role claim (admin or employee)")
	cmd.Flags().StringVar(&tokenUser, "user", "", "Subject user ID")
	cmd.Flags().StringVar(&tokenTenant, "tenant", "", "Tenant ID")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default: JWT_ACCESS_TTL)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func runToken(cmd *cobra.Command, args []string) error {
	if !rbac.IsKnownRole(tokenRole) {
		return fmt.Errorf("unknown role %q", tokenRole)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	m, err := auth.NewManager(cfg.Auth)
	if err != nil {
		return err
	}
	tok, err := m.IssueAccess(time.Now(), tokenUser, tokenTenant, tokenRole, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
