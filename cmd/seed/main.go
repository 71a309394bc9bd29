package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"schoolbook/internal/config"
	"schoolbook/internal/db"
	"schoolbook/internal/identity"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
	"schoolbook/internal/service"
)

func main() {
	reconcile := flag.Bool("reconcile", false, "remove credentials that have no matching account instead of seeding")
	flag.Parse()

	_ = godotenv.Load()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&identity.Credential{}, &model.Account{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	accountRepo := repository.NewAccountRepository(gormDB)
	idp := identity.NewProvider(gormDB)
	ctx := context.Background()

	if *reconcile {
		removed, err := reconcileCredentials(ctx, idp, accountRepo)
		if err != nil {
			log.Fatalf("Failed to reconcile credentials: %v", err)
		}
		log.Printf("Reconcile completed: %d orphaned credentials removed", removed)
		return
	}

	adminService := service.NewAdminService(accountRepo, idp)
	created, err := adminService.Seed(ctx, service.DefaultSeedAccounts())
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}
	log.Printf("Seed completed successfully: %d accounts created", created)
}

// reconcileCredentials deletes credentials whose email has no account profile.
// These appear when a profile write fails after the credential was created.
func reconcileCredentials(ctx context.Context, idp identity.Provider, accounts repository.AccountRepository) (int, error) {
	emails, err := idp.ListEmails(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, email := range emails {
		_, err := accounts.FindByEmail(ctx, email)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return removed, err
		}

		log.Printf("Removing orphaned credential: %s", email)
		if err := idp.DeleteByEmail(ctx, email); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
