package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	ListWishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	AddWishItem(ctx context.Context, userID, productID int64) (*model.WishlistItem, error)
	DeleteWishItem(ctx context.Context, id int64) error

	ListCart(ctx context.Context, userID int64) ([]model.CartItem, error)
	// ListCartInfo returns cart lines with full product details for checkout.
	ListCartInfo(ctx context.Context, userID int64) ([]model.CartItem, error)
	AddCartItem(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	DeleteCartItem(ctx context.Context, id int64) error
}
