package services

import (
	"errors"
	"strings"

	"github.com/diewo77/interiorhome/internal/models"
	"github.com/diewo77/interiorhome/validation"

	"gorm.io/gorm"
)

// HomeCardCount is how many featured cards the landing page shows.
const HomeCardCount = 3

// CardService manages featured cards. They are global; role checks
// happen in the routing layer, not here.
type CardService struct {
	DB *gorm.DB
}

func NewCardService(db *gorm.DB) *CardService { return &CardService{DB: db} }

type CardInput struct {
	Title       string
	Description string
	ImageURL    string
}

func (in *CardInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Title == "" {
		return &ValidationError{Reason: "Title is required"}
	}
	v := validation.Violations{}
	validation.MaxLen("title", in.Title, 100, v)
	if _, ok := v["title"]; ok {
		return &ValidationError{Reason: "Title must be less than 100 characters"}
	}
	validation.Required("image_url", in.ImageURL, v)
	validation.AbsoluteURL("image_url", in.ImageURL, v)
	if _, ok := v["image_url"]; ok {
		return &ValidationError{Reason: "Valid Image URL is required"}
	}
	return nil
}

func (s *CardService) Create(in CardInput) (*models.FeaturedCard, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := models.FeaturedCard{Title: in.Title, Description: in.Description, ImageURL: in.ImageURL}
	if err := s.DB.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CardService) Update(id uint, in CardInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	res := s.DB.Model(&models.FeaturedCard{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       in.Title,
			"description": in.Description,
			"image_url":   in.ImageURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *CardService) Delete(id uint) error {
	res := s.DB.Where("id = ?", id).Delete(&models.FeaturedCard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *CardService) Get(id uint) (*models.FeaturedCard, error) {
	var c models.FeaturedCard
	if err := s.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &c, nil
}

// All returns every card, newest first, for the admin dashboard.
func (s *CardService) All() ([]models.FeaturedCard, error) {
	var cards []models.FeaturedCard
	err := s.DB.Order("created_at DESC, id DESC").Find(&cards).Error
	return cards, err
}

// Recent returns the n newest cards for the landing page.
func (s *CardService) Recent(n int) ([]models.FeaturedCard, error) {
	var cards []models.FeaturedCard
	err := s.DB.Order("created_at DESC, id DESC").Limit(n).Find(&cards).Error
	return cards, err
}
