package config

import (
	"log"
	"strings"

	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"gorm.io/gorm"
)

// SeedCategories ensures the six craft categories exist.
func SeedCategories(db *gorm.DB) {
	for _, name := range models.Categories {
		category := models.Category{
			Name: name,
			Slug: strings.ToLower(name),
		}

		var existing models.Category
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&category).Error; err != nil {
					log.Printf("Failed to seed category %s: %v", name, err)
				}
			}
		}
	}

	log.Println("Categories seeded")
}

// SeedUsers creates the bootstrap admin plus one demo account per role.
func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username: "admin",
			Email:    "admin@craftique.local",
			Password: password,
			FullName: "Platform Admin",
			Role:     models.RoleAdmin,
		},
		{
			Username: "artisan1",
			Email:    "artisan1@example.com",
			Password: password,
			FullName: "Artisan One",
			Role:     models.RoleArtisan,
		},
		{
			Username: "buyer1",
			Email:    "buyer1@example.com",
			Password: password,
			FullName: "Buyer One",
			Role:     models.RoleBuyer,
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("✅ Seeding complete.")
}
