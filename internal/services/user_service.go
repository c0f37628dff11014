package services

import (
	"instructly_go_backend/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (us *UserService) CreateOrUpdateUser(authID, email, name string) (*models.User, error) {
	user := models.User{
		AuthID: authID,
		Email:  email,
		Name:   name,
	}
	result := us.db.Where(models.User{AuthID: authID}).FirstOrCreate(&user)

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (us *UserService) GetUserByAuthID(authID string) (*models.User, error) {
	var user models.User
	result := us.db.Where("auth_id = ?", authID).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
