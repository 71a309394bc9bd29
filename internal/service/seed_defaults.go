package service

import (
	"os"

	"schoolbook/internal/model"
)

// DefaultSeedAccounts returns the built-in admin plus a couple of demo
// teachers and an active demo student. The admin password comes from
// SEED_ADMIN_PASSWORD when set.
func DefaultSeedAccounts() []SeedAccount {
	adminPass := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "admin123"
	}

	return []SeedAccount{
		{
			Name:     "Administrator",
			Email:    "admin@school.local",
			Password: adminPass,
			Role:     model.RoleAdmin,
		},
		{
			Name:       "Grace Hopper",
			Email:      "g.hopper@school.local",
			Password:   "teacher123",
			Role:       model.RoleTeacher,
			Department: "Computer Science",
			Subject:    "Compilers",
		},
		{
			Name:       "Marie Curie",
			Email:      "m.curie@school.local",
			Password:   "teacher123",
			Role:       model.RoleTeacher,
			Department: "Science",
			Subject:    "Physics",
		},
		{
			Name:     "Demo Student",
			Email:    "student@school.local",
			Password: "student123",
			Role:     model.RoleStudent,
		},
	}
}
