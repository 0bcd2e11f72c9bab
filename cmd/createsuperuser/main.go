// Command createsuperuser creates a staff superuser account so the
// authenticated endpoints can be bootstrapped.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/auth"
	"ticket-sales/internal/core/config"
	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/web"
	customeradapters "ticket-sales/internal/features/customers/adapters"
	"ticket-sales/internal/features/customers/domain"
	customerservice "ticket-sales/internal/features/customers/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	configDir := pflag.String("config-dir", ".", "directory containing the .env file")
	email := pflag.String("email", "", "superuser email (required)")
	password := pflag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "superuser password, defaults to $SUPERUSER_PASSWORD")
	name := pflag.String("name", "", "display name")
	pflag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	l := logger.Get()

	yes := true
	in := domain.CustomerInput{
		Email:       *email,
		Name:        *name,
		Password:    *password,
		IsStaff:     &yes,
		IsSuperuser: &yes,
	}
	if err := web.Validate(in); err != nil {
		var httpErr *web.HTTPError
		if errors.As(err, &httpErr) {
			l.Fatal("Invalid superuser", zap.Any("fields", httpErr.Fields))
		}
		l.Fatal("Invalid superuser", zap.Error(err))
	}

	ctx := context.Background()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.DSN()); err != nil {
			l.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		l.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	svc := customerservice.NewCustomerService(
		customeradapters.NewPostgresCustomerRepository(pool),
		auth.NewPasswordHasher(bcrypt.DefaultCost),
	)
	// The command runs with operator rights.
	operator := access.Principal{IsSuperuser: true}

	customer, err := svc.Create(ctx, operator, in)
	if err != nil {
		l.Fatal("Failed to create superuser", zap.Error(err))
	}
	fmt.Printf("Superuser %s created with id %d\n", customer.Email, customer.ID)
}
