package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

type itemInput struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
}

func (r *HTTPRepository) ListWishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	return r.list(ctx, "wishlist.list", "/wishlist/"+backend.Segment(userID))
}

func (r *HTTPRepository) AddWishItem(ctx context.Context, userID, productID int64) (*model.WishlistItem, error) {
	return r.add(ctx, "wishlist.add", "/wishlist", userID, productID)
}

func (r *HTTPRepository) DeleteWishItem(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, "wishlist.delete", "/wishlist/"+backend.Segment(id))
}

func (r *HTTPRepository) ListCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return r.list(ctx, "cart.list", "/cart/"+backend.Segment(userID))
}

func (r *HTTPRepository) ListCartInfo(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return r.list(ctx, "cart.info", "/cart/info/"+backend.Segment(userID))
}

func (r *HTTPRepository) AddCartItem(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	return r.add(ctx, "cart.add", "/cart", userID, productID)
}

func (r *HTTPRepository) DeleteCartItem(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, "cart.delete", "/cart/"+backend.Segment(id))
}

func (r *HTTPRepository) list(ctx context.Context, endpoint, path string) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.client.Get(ctx, endpoint, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *HTTPRepository) add(ctx context.Context, endpoint, path string, userID, productID int64) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.client.Post(ctx, endpoint, path, itemInput{UserID: userID, ProductID: productID}, &item); err != nil {
		return nil, fmt.Errorf("failed to add product %d: %w", productID, err)
	}
	return &item, nil
}
