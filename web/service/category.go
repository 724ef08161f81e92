package service

import (
	"strings"

	"github.com/tiendaweb/tienda/database"
	"github.com/tiendaweb/tienda/database/model"
)

type CategoryService struct{}

func (s *CategoryService) List() ([]*model.Category, error) {
	var categories []*model.Category
	err := database.GetDB().Model(model.Category{}).Order("id").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) Get(id int) (*model.Category, error) {
	category := &model.Category{}
	err := database.GetDB().Model(model.Category{}).Where("id = ?", id).First(category).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(name string) (*model.Category, error) {
	category := &model.Category{Name: strings.TrimSpace(name)}
	if category.Name == "" {
		return nil, ErrEmptyName
	}
	if err := database.GetDB().Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Rename(id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	return database.GetDB().Model(model.Category{}).
		Where("id = ?", id).
		Update("name", name).
		Error
}

func (s *CategoryService) HasArticles(id int) (bool, error) {
	var count int64
	err := database.GetDB().Model(model.Article{}).Where("category_id = ?", id).Count(&count).Error
	return count > 0, err
}

// Delete removes an empty category. A category still referenced by an article is left untouched.
func (s *CategoryService) Delete(id int) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	inUse, err := s.HasArticles(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}
	return database.GetDB().Delete(&model.Category{}, id).Error
}
