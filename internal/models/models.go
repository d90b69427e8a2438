package models

import "time"

// Role values stored on User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:50;unique;not null;index"`
	Email        string `gorm:"size:100;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:10;not null;default:user"`
	CreatedAt    time.Time
}

type Design struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	User        User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:255"`
	Category    string `gorm:"size:50"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetUserID reports the owning user, used by ownership checks.
func (d Design) GetUserID() uint { return d.UserID }

// FeaturedCard is a global resource curated by admins; it has no owner.
type FeaturedCard struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:255;not null"`
	CreatedAt   time.Time
}

// Categories is the fixed set accepted for Design.Category.
var Categories = []string{"Living Room", "Bedroom", "Kitchen", "Bathroom", "Office", "Garden"}

// ValidCategory reports whether c belongs to the fixed category set.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
