package cart

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

var ErrNotInCart = errors.New("product is not in the cart")

type UseCase interface {
	ListWishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	AddWishItem(ctx context.Context, userID, productID int64) (*model.WishlistItem, error)
	DeleteWishItem(ctx context.Context, id int64) error

	ListCart(ctx context.Context, userID int64) ([]model.CartItem, error)
	ListCartInfo(ctx context.Context, userID int64) ([]model.CartItem, error)
	AddCartItem(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	DeleteCartItem(ctx context.Context, id int64) error

	// MoveToWishlist removes one cart line holding productID and wishes it.
	MoveToWishlist(ctx context.Context, userID, productID int64) (*model.WishlistItem, error)
}

// Total sums the effective price of every line.
func Total(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.EffectivePrice())
	}
	return total
}
