package migration

import (
	"Recipe-Hub-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserRecipe{}); err != nil {
		log.Fatalf("Error migrating user recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FamilyRecipe{}); err != nil {
		log.Fatalf("Error migrating family recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FavoriteRecipe{}); err != nil {
		log.Fatalf("Error migrating favorite recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeView{}); err != nil {
		log.Fatalf("Error migrating recipe view database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
