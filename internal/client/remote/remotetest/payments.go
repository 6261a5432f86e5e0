package remotetest

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
)

// PaymentPending is the status given to every verified payment.
const PaymentPending = "pending"

func (b *Backend) verifyPayment(w http.ResponseWriter, _ *http.Request, body []byte) {
	var pd models.PaymentData
	if err := json.Unmarshal(body, &pd); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if pd.TransactionID == "" || pd.PlayerID == "" || pd.ProductID == "" {
		writeFail(w, http.StatusBadRequest, "transactionId, playerId and productId are required")
		return
	}
	for _, p := range b.payments {
		if p.TransactionID == pd.TransactionID {
			writeFail(w, http.StatusConflict, "transaction already submitted")
			return
		}
	}
	p := models.Payment{
		TransactionID: pd.TransactionID,
		Amount:        pd.Amount,
		PlayerID:      pd.PlayerID,
		ProductID:     pd.ProductID,
		ProductName:   pd.ProductName,
		Diamonds:      pd.Diamonds,
		Price:         pd.Price,
		Status:        PaymentPending,
		CreatedAt:     b.stamp(),
	}
	b.payments = append(b.payments, p)
	writeJSON(w, http.StatusOK, models.Envelope[any]{Success: true, Message: "payment submitted", Data: p})
}

func (b *Backend) paymentStatus(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := chi.URLParam(r, "transactionId")
	for _, p := range b.payments {
		if p.TransactionID == id {
			writeOK(w, http.StatusOK, p)
			return
		}
	}
	writeFail(w, http.StatusNotFound, "payment not found")
}

// listPayments returns the most recent payments first.
func (b *Backend) listPayments(w http.ResponseWriter, r *http.Request, _ []byte) {
	limit := limitParam(r, 50)
	out := slices.Clone(b.payments)
	slices.Reverse(out)
	if len(out) > limit {
		out = out[:limit]
	}
	writeList(w, out)
}
