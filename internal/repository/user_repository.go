package repository

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/welldanyogia/recipe-app-api/internal/errors"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// userRepository implements UserRepository using GORM
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser creates and saves a new user with a normalized email and hashed password
func (r *userRepository) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	user, err := models.NewUser(email, password)
	if err != nil {
		return nil, err
	}
	user.Name = name

	if err := r.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSuperuser creates and saves a new staff superuser
func (r *userRepository) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := models.NewSuperuser(email, password)
	if err != nil {
		return nil, err
	}

	if err := r.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) create(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return fmt.Errorf("user with email '%s' already exists: %w", user.Email, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create user: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a user by its ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", result.Error)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email; the lookup email is normalized first
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", result.Error)
	}
	return &user, nil
}

// Authenticate returns the active user matching the credentials
func (r *userRepository) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// Update saves changes to an existing user; unknown users are not found
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(user).Select("*").Omit("id", "created_at").Updates(user)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return fmt.Errorf("user with email '%s' already exists: %w", user.Email, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
