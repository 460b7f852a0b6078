package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	txapp "github.com/dwikikusuma/warung-pos/internal/transaction/app"
)

type TransactionHandler struct {
	svc *txapp.Service
}

func NewTransactionHandler(svc *txapp.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type PurgeRequestDTO struct {
	Days int `json:"days"`
}

type CountResponse struct {
	Removed int64 `json:"removed"`
}

func (h *TransactionHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/summary/today", h.TodaySummary)
	r.Post("/purge", h.Purge)
	r.Post("/reset", h.Reset)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	recs, err := h.svc.ListTransactions(r.Context(), limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	out := make([]TransactionView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toTransactionView(rec))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.GetTransaction(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransactionView(rec))
}

func (h *TransactionHandler) TodaySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.TodaySummary(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, SummaryView{
		Summary:        sum,
		RevenueDisplay: formatRupiah(sum.Revenue),
		Since:          time.Now().Format(time.DateOnly),
	})
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) Purge(w http.ResponseWriter, r *http.Request) {
	var req PurgeRequestDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
			return
		}
	}

	n, err := h.svc.PurgeOlderThan(r.Context(), req.Days)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Removed: n})
}

// Reset wipes the whole transaction history.
func (h *TransactionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Reset(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Removed: n})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
