package services

import (
	"errors"
	"strings"

	"github.com/diewo77/interiorhome/internal/models"
	"github.com/diewo77/interiorhome/validation"

	"gorm.io/gorm"
)

// PageSize is the fixed number of designs per list page.
const PageSize = 8

type DesignService struct {
	DB *gorm.DB
}

func NewDesignService(db *gorm.DB) *DesignService { return &DesignService{DB: db} }

type DesignInput struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
}

type Pagination struct {
	Page       int
	TotalPages int
	Total      int64
}

// normalize trims fields and drops categories outside the fixed set.
func (in *DesignInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Category = strings.TrimSpace(in.Category)
	if !models.ValidCategory(in.Category) {
		in.Category = ""
	}
}

func (in *DesignInput) validate() error {
	if in.Title == "" {
		return &ValidationError{Reason: "Title is required"}
	}
	v := validation.Violations{}
	validation.MaxLen("title", in.Title, 100, v)
	if _, ok := v["title"]; ok {
		return &ValidationError{Reason: "Title must be less than 100 characters"}
	}
	if in.ImageURL != "" {
		validation.AbsoluteURL("image_url", in.ImageURL, v)
		if _, ok := v["image_url"]; ok {
			return &ValidationError{Reason: "Invalid image URL format"}
		}
	}
	return nil
}

func (s *DesignService) Create(userID uint, in DesignInput) (*models.Design, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	d := models.Design{UserID: userID, Title: in.Title, Description: in.Description, ImageURL: in.ImageURL, Category: in.Category}
	if err := s.DB.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Update edits an owned design. The statement filters on (id, user_id)
// so another user's row can never match; zero rows affected is a
// user-facing failure, not a silent no-op.
func (s *DesignService) Update(id, userID uint, in DesignInput) error {
	in.normalize()
	if err := in.validate(); err != nil {
		return err
	}
	res := s.DB.Model(&models.Design{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"title":       in.Title,
			"description": in.Description,
			"image_url":   in.ImageURL,
			"category":    in.Category,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// Delete removes an owned design, filtered on (id, user_id) like Update.
func (s *DesignService) Delete(id, userID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Design{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// Get loads an owned design for the edit form.
func (s *DesignService) Get(id, userID uint) (*models.Design, error) {
	var d models.Design
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &d, nil
}

// List returns one page of the user's designs, newest first. The page
// number is clamped to >= 1; a page past the end returns an empty list.
func (s *DesignService) List(userID uint, page int) ([]models.Design, Pagination, error) {
	if page < 1 {
		page = 1
	}
	scope := s.DB.Model(&models.Design{}).Where("user_id = ?", userID)
	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	var designs []models.Design
	if err := s.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&designs).Error; err != nil {
		return nil, Pagination{}, err
	}
	return designs, Pagination{Page: page, TotalPages: totalPages, Total: total}, nil
}

// CountForUser backs the profile page's design counter.
func (s *DesignService) CountForUser(userID uint) (int64, error) {
	var total int64
	err := s.DB.Model(&models.Design{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}
