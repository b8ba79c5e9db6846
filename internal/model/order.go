package model

// OrderRequest is the body of POST /order. Amount is the payable total in
// whole currency units.
type OrderRequest struct {
	UserID        int64   `json:"userId"`
	Address       string  `json:"address"`
	ProductIDList []int64 `json:"productIdList"`
	Amount        int64   `json:"amount"`
}
