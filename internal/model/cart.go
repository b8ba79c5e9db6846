package model

// CartItem is one line of a cart or wishlist. A product added twice yields two lines.
type CartItem struct {
	ID      int64   `json:"id"`
	Product Product `json:"product"`
}

type WishlistItem = CartItem
