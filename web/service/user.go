package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tiendaweb/tienda/database"
	"github.com/tiendaweb/tienda/database/model"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/util/crypto"

	"gorm.io/gorm"
)

type UserService struct{}

// CheckUser returns the user when the password matches its stored hash, nil otherwise.
func (s *UserService) CheckUser(username string, password string) *model.User {
	user, err := s.GetByUsername(username)
	if errors.Is(err, ErrNotFound) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

func (s *UserService) GetByUsername(username string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).Where("id = ?", id).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a regular account. Registration never grants the admin flag.
func (s *UserService) Register(username, password, name, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := s.GetByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: username,
		Password: hash,
		Name:     name,
		Email:    email,
	}
	err = database.GetDB().Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	logger.Infof("user %s registered", username)
	return user, nil
}

// ChangePassword replaces the stored hash once the current password verifies.
// Existing sessions of the user stay valid.
func (s *UserService) ChangePassword(username, oldPassword, newPassword string) error {
	user, err := s.GetByUsername(username)
	if err != nil {
		return err
	}
	if !crypto.CheckPasswordHash(user.Password, oldPassword) {
		return ErrInvalidCredentials
	}
	hash, err := crypto.HashPasswordAsBcrypt(newPassword)
	if err != nil {
		return err
	}
	return database.GetDB().Model(model.User{}).
		Where("id = ?", user.Id).
		Update("password", hash).
		Error
}

// UpsertAdmin creates the named account as admin or resets its password and grants admin.
func (s *UserService) UpsertAdmin(username, password string) error {
	if username == "" {
		return errors.New("username can not be empty")
	} else if password == "" {
		return errors.New("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user, err := s.GetByUsername(username)
	if errors.Is(err, ErrNotFound) {
		return db.Create(&model.User{Username: username, Password: hash, Admin: true}).Error
	} else if err != nil {
		return err
	}
	return db.Model(model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]any{"password": hash, "admin": true}).
		Error
}

func (s *UserService) ListAdmins() ([]*model.User, error) {
	var users []*model.User
	err := database.GetDB().Model(model.User{}).Where("admin = ?", true).Order("id").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return users, nil
}

// HasDefaultAdmin reports whether the seeded admin/admin account is still unchanged.
func (s *UserService) HasDefaultAdmin() bool {
	return s.CheckUser("admin", "admin") != nil
}
