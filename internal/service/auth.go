package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quill/internal/models"
)

// dummyHash is compared against when no account matches the login, so
// a missing account costs the same as a wrong password.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("quill-timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService verifies credentials and registers accounts.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Authenticate looks up an account by username or email and verifies
// the password. Any mismatch returns ErrAuthenticationFailed.
func (s *AuthService) Authenticate(login, password string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}
	return &user, nil
}

// Register creates an account with the default role. It fails with
// ErrDuplicateIdentifier when the username or email is already taken.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateIdentifier
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var role models.Role
	if err := s.db.Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []models.Role{role},
	}
	if err := s.db.Create(user).Error; err != nil {
		// A concurrent registration can slip past the count check and
		// trip the unique index instead.
		return nil, ErrDuplicateIdentifier
	}
	return user, nil
}

// UserByUsername loads an account and its roles by exact username.
func (s *AuthService) UserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
