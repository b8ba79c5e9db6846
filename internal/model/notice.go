package model

type Notice struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Date is the calendar day part of CreatedAt.
func (n Notice) Date() string {
	if len(n.CreatedAt) < 10 {
		return n.CreatedAt
	}
	return n.CreatedAt[:10]
}
