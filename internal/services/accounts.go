package services

import (
	"errors"
	"strings"

	"github.com/diewo77/interiorhome/internal/models"
	"github.com/diewo77/interiorhome/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService { return &AccountService{DB: db} }

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the input, enforces username/email uniqueness with
// a single lookup over both columns, and inserts the user with the
// default role. Validation failures abort before any write.
func (s *AccountService) Register(in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, &ValidationError{Reason: "All fields are required"}
	}
	v := validation.Violations{}
	validation.Username("username", in.Username, v)
	if _, ok := v["username"]; ok {
		return nil, &ValidationError{Reason: "Username must be 3-20 characters (letters, numbers, underscores)"}
	}
	validation.Email("email", in.Email, v)
	if _, ok := v["email"]; ok {
		return nil, &ValidationError{Reason: "Invalid email format"}
	}
	validation.Password("password", in.Password, v)
	if _, ok := v["password"]; ok {
		return nil, &ValidationError{Reason: "Password must be at least 8 characters with letters and numbers"}
	}
	if in.Password != in.ConfirmPassword {
		return nil, &ValidationError{Reason: "Passwords do not match"}
	}

	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: in.Username, Email: in.Email, PasswordHash: string(hash), Role: models.RoleUser}
	if err := s.DB.Create(&user).Error; err != nil {
		// Unique constraint can still fire between the lookup and the
		// insert; report it the same way.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. Unknown username and
// wrong password both return ErrInvalidCredentials.
func (s *AccountService) Authenticate(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get loads a user by id for profile display.
func (s *AccountService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
