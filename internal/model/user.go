package model

import "github.com/shopspring/decimal"

type User struct {
	ID     int64           `json:"id,omitempty"`
	Email  string          `json:"email"`
	Points int             `json:"points"`
	Level  MembershipLevel `json:"level"`
}

type MembershipLevel struct {
	Name     string          `json:"name,omitempty"`
	Discount decimal.Decimal `json:"discount"` // 1 means no member discount
}
