package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"go.uber.org/zap"
)

type cartUseCase struct {
	repo   cart.Repository
	logger logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *cartUseCase) ListWishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	return uc.repo.ListWishlist(ctx, userID)
}

func (uc *cartUseCase) AddWishItem(ctx context.Context, userID, productID int64) (*model.WishlistItem, error) {
	item, err := uc.repo.AddWishItem(ctx, userID, productID)
	if err != nil {
		uc.logger.Error("failed to add wish item", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (uc *cartUseCase) DeleteWishItem(ctx context.Context, id int64) error {
	return uc.repo.DeleteWishItem(ctx, id)
}

func (uc *cartUseCase) ListCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return uc.repo.ListCart(ctx, userID)
}

func (uc *cartUseCase) ListCartInfo(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return uc.repo.ListCartInfo(ctx, userID)
}

func (uc *cartUseCase) AddCartItem(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	item, err := uc.repo.AddCartItem(ctx, userID, productID)
	if err != nil {
		uc.logger.Error("failed to add cart item", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (uc *cartUseCase) DeleteCartItem(ctx context.Context, id int64) error {
	return uc.repo.DeleteCartItem(ctx, id)
}

func (uc *cartUseCase) MoveToWishlist(ctx context.Context, userID, productID int64) (*model.WishlistItem, error) {
	items, err := uc.repo.ListCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var line *model.CartItem
	for i := range items {
		if items[i].Product.ID == productID {
			line = &items[i]
			break
		}
	}
	if line == nil {
		return nil, cart.ErrNotInCart
	}

	// Add to the wishlist before removing the cart line.
	wished, err := uc.repo.AddWishItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.DeleteCartItem(ctx, line.ID); err != nil {
		return wished, fmt.Errorf("wished product %d but failed to remove cart line %d: %w", productID, line.ID, err)
	}
	return wished, nil
}
