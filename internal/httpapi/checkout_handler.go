package httpapi

import (
	"net/http"

	checkoutapp "github.com/dwikikusuma/warung-pos/internal/checkout/app"
)

type CheckoutHandler struct {
	svc *checkoutapp.Service
}

func NewCheckoutHandler(svc *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Checkout(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTransactionView(rec))
}
