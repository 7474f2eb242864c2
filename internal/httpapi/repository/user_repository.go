package repository

import (
	"eduground/internal/httpapi/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	ListByStaff(isStaff bool) ([]models.User, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user, ordered by signup date.
func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("date_joined").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByStaff returns users filtered on the staff flag.
func (r *userRepository) ListByStaff(isStaff bool) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("is_staff = ?", isStaff).Order("date_joined").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
