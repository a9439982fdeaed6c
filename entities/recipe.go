package entities

import (
	"github.com/google/uuid"
	"time"
)

type UserRecipe struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `gorm:"index" json:"user_id"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"image_url,omitempty"`
	ReadyInMinutes int       `json:"ready_in_minutes"`
	Vegan          bool      `json:"vegan"`
	Vegetarian     bool      `json:"vegetarian"`
	GlutenFree     bool      `json:"gluten_free"`
	Ingredients    string    `json:"ingredients" gorm:"type:text"`
	Instructions   string    `json:"instructions" gorm:"type:text"`
	Servings       int       `json:"servings"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type FamilyRecipe struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `gorm:"index" json:"user_id"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"image_url,omitempty"`
	ReadyInMinutes int       `json:"ready_in_minutes"`
	Vegan          bool      `json:"vegan"`
	Vegetarian     bool      `json:"vegetarian"`
	GlutenFree     bool      `json:"gluten_free"`
	Ingredients    string    `json:"ingredients" gorm:"type:text"`
	Instructions   string    `json:"instructions" gorm:"type:text"`
	Servings       int       `json:"servings"`
	OwnerName      string    `json:"owner_name"`
	WhenToPrepare  string    `json:"when_to_prepare"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

/// FavoriteRecipe is membership, not a log: the composite unique index keeps
// at most one row per (user, recipe, source) triple.
type FavoriteRecipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_favorite_identity" json:"user_id"`
	RecipeID  string    `gorm:"size:64;uniqueIndex:idx_favorite_identity" json:"recipe_id"`
	Source    string    `gorm:"size:16;uniqueIndex:idx_favorite_identity" json:"source"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID"`
}

type RecipeView struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:idx_view_identity" json:"user_id"`
	RecipeID string    `gorm:"size:64;uniqueIndex:idx_view_identity" json:"recipe_id"`
	Source   string    `gorm:"size:16;uniqueIndex:idx_view_identity" json:"source"`
	ViewedAt time.Time `gorm:"type:timestamp;index" json:"viewed_at"`

	User *User `gorm:"foreignKey:UserID"`
}
