package service

import (
	"errors"

	"webchat/internal/models"

	"gorm.io/gorm"
)

// UserService 封装用户相关的业务逻辑。
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// LoginOrCreate 按名字精确查找用户，不存在则创建。
// 用户行只在这里创建一次，之后永不更新。
func (s *UserService) LoginOrCreate(name string) (*models.User, error) {
	var user models.User
	err := s.db.Where("name = ?", name).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user = models.User{Name: name}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByName 按名字精确查找用户。
func (s *UserService) GetByName(name string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
