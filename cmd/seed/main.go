package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mazad/internal/config"
	"mazad/internal/db"
	"mazad/internal/model"
	"mazad/internal/repository"
)

var seedCategories = []model.Category{
	{Name: model.LocalizedText{En: "Electronics", Ar: "إلكترونيات"}, Slug: model.LocalizedText{En: "electronics", Ar: "إلكترونيات"}},
	{Name: model.LocalizedText{En: "Vehicles", Ar: "مركبات"}, Slug: model.LocalizedText{En: "vehicles", Ar: "مركبات"}},
	{Name: model.LocalizedText{En: "Real Estate", Ar: "عقارات"}, Slug: model.LocalizedText{En: "real-estate", Ar: "عقارات"}},
	{Name: model.LocalizedText{En: "Art & Collectibles", Ar: "فنون ومقتنيات"}, Slug: model.LocalizedText{En: "art-collectibles", Ar: "فنون-ومقتنيات"}},
	{Name: model.LocalizedText{En: "Jewelry & Watches", Ar: "مجوهرات وساعات"}, Slug: model.LocalizedText{En: "jewelry-watches", Ar: "مجوهرات-وساعات"}},
	{Name: model.LocalizedText{En: "Furniture", Ar: "أثاث"}, Slug: model.LocalizedText{En: "furniture", Ar: "أثاث"}},
}

var seedLocations = []model.Location{
	{City: "Riyadh", Country: "Saudi Arabia", Latitude: "24.7136", Longitude: "46.6753"},
	{City: "Jeddah", Country: "Saudi Arabia", Latitude: "21.4858", Longitude: "39.1925"},
	{City: "Dubai", Country: "United Arab Emirates", Latitude: "25.2048", Longitude: "55.2708"},
	{City: "Cairo", Country: "Egypt", Latitude: "30.0444", Longitude: "31.2357"},
	{City: "Amman", Country: "Jordan", Latitude: "31.9454", Longitude: "35.9284"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Location{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	created := 0
	existing, err := categoryRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}
	if len(existing) == 0 {
		for i := range seedCategories {
			if err := categoryRepo.Create(ctx, &seedCategories[i]); err != nil {
				log.Fatalf("Failed to create category %q: %v", seedCategories[i].Slug.En, err)
			}
			created++
		}
	}
	log.Printf("Categories seeded: %d new (%d already present)", created, len(existing))

	created = 0
	locations, err := locationRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list locations: %v", err)
	}
	if len(locations) == 0 {
		for i := range seedLocations {
			if err := locationRepo.Create(ctx, &seedLocations[i]); err != nil {
				log.Fatalf("Failed to create location %q: %v", seedLocations[i].City, err)
			}
			created++
		}
	}
	log.Printf("Locations seeded: %d new (%d already present)", created, len(locations))

	if cfg.OwnerEmail != "" {
		if err := seedAdmin(ctx, userRepo, cfg.OwnerEmail); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
	} else {
		log.Println("OWNER_EMAIL not set, skipping admin user")
	}

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the owner account with the admin role if it does not
// exist yet. The initial password must be changed after first login.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin user %s already exists", email)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Marketplace Owner",
		Role:         model.RoleAdmin,
		UserType:     model.UserTypeBoth,
		Status:       model.UserStatusActive,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin user %s created with default password", email)
	return nil
}
