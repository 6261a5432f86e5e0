package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentData is the body of POST /payments/verify.
type PaymentData struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	PlayerID      string          `json:"playerId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName,omitempty"`
	Diamonds      int             `json:"diamonds,omitempty"`
	Price         decimal.Decimal `json:"price"`
}

// Payment is a payment record as listed by the backend. Status values are
// owned by the backend.
type Payment struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	PlayerID      string          `json:"playerId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName,omitempty"`
	Diamonds      int             `json:"diamonds,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
}
