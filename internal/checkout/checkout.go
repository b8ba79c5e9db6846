// Package checkout prices a cart, applies the member discount and places the
// order.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNotPurchasable  = errors.New("cart cannot be purchased")
	ErrAddressRequired = errors.New("shipping address is required")
)

// Line is one product of the cart with the number of lines holding it.
type Line struct {
	Product model.Product
	Amounts int
}

func (l Line) InStock() bool {
	return l.Amounts <= l.Product.Stocks
}

// Summary is a priced cart. ProductIDs keeps one entry per cart line, in cart
// order, as the order endpoint expects.
type Summary struct {
	Lines          []Line
	ProductIDs     []int64
	Total          decimal.Decimal
	Discount       decimal.Decimal
	MemberDiscount bool
	Payable        decimal.Decimal
	Purchasable    bool
}

// Summarize groups cart lines per product and prices them. A level discount
// below 1 is a member discount; the payable amount is rounded to whole units.
func Summarize(items []model.CartItem, user *model.User) Summary {
	s := Summary{
		Total:       cart.Total(items),
		Discount:    decimal.NewFromInt(1),
		Purchasable: len(items) > 0,
	}

	index := make(map[int64]int, len(items))
	for _, item := range items {
		s.ProductIDs = append(s.ProductIDs, item.Product.ID)
		if i, ok := index[item.Product.ID]; ok {
			s.Lines[i].Amounts++
			continue
		}
		index[item.Product.ID] = len(s.Lines)
		s.Lines = append(s.Lines, Line{Product: item.Product, Amounts: 1})
	}
	for _, line := range s.Lines {
		if !line.InStock() {
			s.Purchasable = false
		}
	}

	s.Payable = s.Total
	if user != nil && user.Level.Discount.IsPositive() && user.Level.Discount.LessThan(decimal.NewFromInt(1)) {
		s.Discount = user.Level.Discount
		s.MemberDiscount = true
		s.Payable = s.Total.Mul(s.Discount).Round(0)
	}
	return s
}

type Service struct {
	carts  cart.UseCase
	client *backend.Client
	logger logger.ZapLogger
}

func NewService(carts cart.UseCase, client *backend.Client, log logger.ZapLogger) *Service {
	return &Service{
		carts:  carts,
		client: client,
		logger: log,
	}
}

func (s *Service) User(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	if err := s.client.Get(ctx, "user.get", "/user/"+backend.Segment(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Summary loads the user's cart with product details and membership level.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	items, err := s.carts.ListCartInfo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	summary := Summarize(items, user)
	return &summary, nil
}

// PlaceOrder submits the cart as an order and returns the new order id.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", ErrAddressRequired
	}

	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return "", err
	}
	if !summary.Purchasable {
		return "", ErrNotPurchasable
	}

	order := model.OrderRequest{
		UserID:        userID,
		Address:       address,
		ProductIDList: summary.ProductIDs,
		Amount:        summary.Payable.IntPart(),
	}
	idempotencyKey := uuid.NewString()

	var raw json.RawMessage
	err = s.client.Do(ctx, backend.Request{
		Endpoint: "order.create",
		Method:   http.MethodPost,
		Path:     "/order",
		Headers:  map[string]string{"Idempotency-Key": idempotencyKey},
		Body:     order,
	}, &raw)
	if err != nil {
		s.logger.Error("failed to place order", zap.Int64("user_id", userID), zap.String("idempotency_key", idempotencyKey), zap.Error(err))
		return "", fmt.Errorf("failed to place order: %w", err)
	}

	orderID := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if orderID == "" || orderID == "null" {
		return "", errors.New("order response carries no id")
	}
	s.logger.Info("order placed",
		zap.Int64("user_id", userID),
		zap.String("order_id", orderID),
		zap.String("amount", summary.Payable.String()),
	)
	return orderID, nil
}
