// Command seed provisions the Admin role and an administrator account.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/somukhan9/dapper-identity/internal/config"
	"github.com/somukhan9/dapper-identity/internal/identity"
	"github.com/somukhan9/dapper-identity/internal/logging"
	"github.com/somukhan9/dapper-identity/internal/repositories/repomanager"
	"github.com/somukhan9/dapper-identity/internal/security/password"
)

const adminRole = "Admin"

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	m, err := repomanager.NewPostgresManager(cfg, logger)
	if err != nil {
		logger.Error(ctx, "open database failed", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	email, hash, err := promptCredentials()
	if err != nil {
		logger.Error(ctx, "reading credentials failed", "error", err)
		os.Exit(1)
	}

	if err := seed(ctx, m, email, hash); err != nil {
		logger.Error(ctx, "seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info(ctx, "administrator account ready", "email", email)
}

// promptCredentials reads the admin email from stdin and the password with
// terminal echo disabled. The plaintext is wiped once hashed.
func promptCredentials() (email, hash string, err error) {
	fmt.Print("Admin email: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", "", err
	}
	email = strings.TrimSpace(line)
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	fmt.Print("Admin password: ")
	plain, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	hash, err = password.Hash(password.Default, string(plain))
	for i := range plain {
		plain[i] = 0
	}
	if err != nil {
		return "", "", err
	}
	return email, hash, nil
}

func seed(ctx context.Context, m repomanager.Manager, email, hash string) error {
	role, err := m.Roles().FindByName(ctx, identity.Normalize(adminRole))
	if err != nil {
		return err
	}
	if role == nil {
		res, err := m.Roles().Create(ctx, &identity.Role{Name: adminRole})
		if err != nil {
			return err
		}
		if !res.Succeeded {
			return fmt.Errorf("create role: %s", res)
		}
	}

	user := &identity.User{
		Email:          email,
		EmailConfirmed: true,
		PasswordHash:   hash,
	}
	res, err := m.Users().Create(ctx, user)
	if err != nil {
		return err
	}
	if !res.Succeeded {
		return fmt.Errorf("create account: %s", res)
	}

	return m.Users().AddToRole(ctx, user, adminRole)
}
