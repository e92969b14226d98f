package dto

// CheckoutItem is one cart line in a checkout request.
type CheckoutItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CheckoutRequest describes the Stripe checkout payload.
type CheckoutRequest struct {
	Items []CheckoutItem `json:"items"`
}

// CheckoutResponse carries the payment redirect URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}
