package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tiendaweb/tienda/database"
	"github.com/tiendaweb/tienda/database/model"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/util/common"
)

// ArticleInput carries the editable article fields. CategoryId 0 means no category.
type ArticleInput struct {
	Name        string
	Price       float64
	Tax         int
	Description string
	Stock       int
	CategoryId  int
}

type ArticleService struct {
	categoryService CategoryService
	images          *ImageService
}

func NewArticleService(images *ImageService) *ArticleService {
	return &ArticleService{images: images}
}

// List returns every article, or only those of categoryID when it is not 0.
func (s *ArticleService) List(categoryID int) ([]*model.Article, error) {
	var articles []*model.Article
	query := database.GetDB().Model(model.Article{}).Order("id")
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	err := query.Find(&articles).Error
	return articles, err
}

func (s *ArticleService) Get(id int) (*model.Article, error) {
	article := &model.Article{}
	err := database.GetDB().Model(model.Article{}).Where("id = ?", id).First(article).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) categoryRef(id int) (*int, error) {
	if id == 0 {
		return nil, nil
	}
	if _, err := s.categoryService.Get(id); errors.Is(err, ErrNotFound) {
		return nil, ErrCategoryMissing
	} else if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *ArticleService) apply(article *model.Article, in ArticleInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if in.Price < 0 || math.IsInf(in.Price, 0) || math.IsNaN(in.Price) {
		return ErrInvalidPrice
	}
	ref, err := s.categoryRef(in.CategoryId)
	if err != nil {
		return err
	}
	article.Name = strings.TrimSpace(in.Name)
	article.Price = common.RoundPrice(in.Price)
	article.Tax = in.Tax
	article.Description = in.Description
	article.Stock = in.Stock
	article.CategoryId = ref
	return nil
}

// Create stores a new article. image is the stored image name, empty for none.
func (s *ArticleService) Create(in ArticleInput, image string) (*model.Article, error) {
	article := &model.Article{Image: image}
	if err := s.apply(article, in); err != nil {
		return nil, err
	}
	if err := database.GetDB().Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// Update overwrites the article fields. A non-empty image replaces the previous reference;
// the previous file is kept since another article may use the same name.
func (s *ArticleService) Update(id int, in ArticleInput, image string) (*model.Article, error) {
	article, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(article, in); err != nil {
		return nil, err
	}
	if image != "" {
		article.Image = image
	}
	err = database.GetDB().Model(article).
		Select("name", "price", "tax", "description", "stock", "category_id", "image").
		Updates(article).
		Error
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes the article record and then its image file.
// Image removal is best-effort: a failure is logged and never blocks the delete.
func (s *ArticleService) Delete(ctx context.Context, id int) error {
	article, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := database.GetDB().Delete(&model.Article{}, id).Error; err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	if article.HasImage() && s.images != nil {
		if err := s.images.Remove(ctx, article.Image); err != nil {
			logger.Warningf("article %d deleted but image %q could not be removed: %v", id, article.Image, err)
		}
	}
	return nil
}
