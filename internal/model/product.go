package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stocks      int             `json:"stocks"`
	Photos      []ProductPhoto  `json:"productPhotos,omitempty"`
	Categories  []Category      `json:"categories,omitempty"`
	NewProduct  []ProductMarker `json:"newproduct,omitempty"` // non-empty when flagged as a new arrival
	OnSale      *OnSale         `json:"onsale,omitempty"`
}

type ProductPhoto struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type ProductMarker struct {
	ID int64 `json:"id"`
}

type OnSale struct {
	ID       int64           `json:"id,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}

// UnmarshalJSON accepts onsale both as an object (cart and checkout payloads)
// and as an array (product listings), where the first entry applies.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		OnSale json.RawMessage `json:"onsale"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	sale, err := decodeOnSale(aux.OnSale)
	if err != nil {
		return err
	}
	p.OnSale = sale
	return nil
}

func decodeOnSale(raw json.RawMessage) (*OnSale, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var sales []OnSale
		if err := json.Unmarshal(raw, &sales); err != nil {
			return nil, err
		}
		if len(sales) == 0 {
			return nil, nil
		}
		return &sales[0], nil
	}
	var sale OnSale
	if err := json.Unmarshal(raw, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Key is the stable list key of a product.
func (p Product) Key() string {
	return strconv.FormatInt(p.ID, 10)
}

// EffectivePrice is the price a customer pays for one unit: the sale price
// rounded to the nearest whole unit when the product is on sale.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.OnSale == nil {
		return p.Price
	}
	return p.Price.Mul(p.OnSale.Discount).Round(0)
}

func (p Product) InStock() bool {
	return p.Stocks > 0
}

func (p Product) IsNew() bool {
	return len(p.NewProduct) > 0
}

// CoverURL returns the first photo, or "" when the product has none.
func (p Product) CoverURL() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0].URL
}
