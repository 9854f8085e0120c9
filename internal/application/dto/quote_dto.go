package dto

import "time"

// CreateQuoteRequest body para POST /api/quotes (público).
type CreateQuoteRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity,omitempty"`
	Message  string `json:"message,omitempty"`
}

// QuoteResponse solicitud de cotización.
type QuoteResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Product  string    `json:"product"`
	Quantity int       `json:"quantity"`
	Message  string    `json:"message"`
	Date     time.Time `json:"date"`
}
