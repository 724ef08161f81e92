package service

import "github.com/tiendaweb/tienda/logger"

// CartService is a placeholder: additions are validated and logged, nothing is stored.
type CartService struct{}

func (s *CartService) Add(username string, articleID int, quantity int) error {
	if articleID <= 0 {
		return ErrInvalidArticle
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	logger.Infof("cart add: user %s, article %d, quantity %d", username, articleID, quantity)
	return nil
}
