package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/client/remote"
	"github.com/dmitrijs2005/diamondstore/internal/common"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
)

var transactionIDPattern = regexp.MustCompile(`^[A-Z0-9]{10,12}$`)

// NormalizeTransactionID trims and upper-cases raw and checks that the
// result is 10 to 12 letters or digits.
func NormalizeTransactionID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return "", &common.ValidationError{Field: "transactionId", Reason: "transaction ID is required"}
	}
	if !transactionIDPattern.MatchString(id) {
		return "", &common.ValidationError{Field: "transactionId", Reason: "must be 10-12 letters or digits"}
	}
	return id, nil
}

// Order is what the buyer submits at checkout.
type Order struct {
	PlayerID      string
	TransactionID string
	Product       models.Product
}

// CheckoutService submits payment references and exposes the payment
// admin endpoints.
type CheckoutService interface {
	// Submit validates o and forwards it for verification. It returns the
	// payload that was accepted.
	Submit(ctx context.Context, o Order) (models.PaymentData, error)
	PaymentStatus(ctx context.Context, transactionID string) (models.Payment, error)
	ListPayments(ctx context.Context, limit int) ([]models.Payment, error)
	// Seed asks the backend to load its sample catalog and returns the
	// server's message.
	Seed(ctx context.Context) (string, error)
}

type checkoutService struct {
	client remote.Client
	log    logging.Logger
}

func NewCheckoutService(client remote.Client, log logging.Logger) CheckoutService {
	return &checkoutService{client: client, log: log.With("component", "checkout")}
}

func (s *checkoutService) Submit(ctx context.Context, o Order) (models.PaymentData, error) {
	playerID := strings.TrimSpace(o.PlayerID)
	if playerID == "" {
		return models.PaymentData{}, &common.ValidationError{Field: "playerId", Reason: "player ID is required"}
	}
	if o.Product.ID == "" {
		return models.PaymentData{}, &common.ValidationError{Field: "productId", Reason: "product is required"}
	}
	txID, err := NormalizeTransactionID(o.TransactionID)
	if err != nil {
		return models.PaymentData{}, err
	}

	pd := models.PaymentData{
		TransactionID: txID,
		Amount:        o.Product.Price,
		PlayerID:      playerID,
		ProductID:     o.Product.ID,
		ProductName:   o.Product.Name,
		Diamonds:      o.Product.Diamonds,
		Price:         o.Product.Price,
	}

	res, err := s.client.VerifyPayment(ctx, pd)
	if err != nil {
		s.log.Error(ctx, "payment verification failed", "transaction_id", txID, "error", err)
		return models.PaymentData{}, err
	}
	if err := serverResult(res.Success, res.Message, "payment verification failed"); err != nil {
		s.log.Warn(ctx, "payment rejected", "transaction_id", txID, "error", err)
		return models.PaymentData{}, err
	}

	s.log.Info(ctx, "payment submitted", "transaction_id", txID, "product_id", pd.ProductID)
	return pd, nil
}

func (s *checkoutService) PaymentStatus(ctx context.Context, transactionID string) (models.Payment, error) {
	txID, err := NormalizeTransactionID(transactionID)
	if err != nil {
		return models.Payment{}, err
	}
	res, err := s.client.PaymentStatus(ctx, txID)
	if err != nil {
		return models.Payment{}, err
	}
	if err := serverResult(res.Success, res.Message, "failed to get payment status"); err != nil {
		return models.Payment{}, err
	}
	if res.Data == nil {
		return models.Payment{}, fmt.Errorf("payment %s: %w", txID, common.ErrNotFound)
	}
	return *res.Data, nil
}

func (s *checkoutService) ListPayments(ctx context.Context, limit int) ([]models.Payment, error) {
	res, err := s.client.ListPayments(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := serverResult(res.Success, res.Message, "failed to list payments"); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (s *checkoutService) Seed(ctx context.Context) (string, error) {
	res, err := s.client.Seed(ctx)
	if err != nil {
		return "", err
	}
	if err := serverResult(res.Success, res.Message, "failed to seed database"); err != nil {
		return "", err
	}
	s.log.Info(ctx, "backend seeded", "message", res.Message)
	return res.Message, nil
}
