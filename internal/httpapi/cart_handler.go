package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	cartapp "github.com/dwikikusuma/warung-pos/internal/cart/app"
	cartdomain "github.com/dwikikusuma/warung-pos/internal/cart/domain"
)

type CartHandler struct {
	svc *cartapp.Service
}

func NewCartHandler(svc *cartapp.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type AddAdHocRequestDTO struct {
	UnitPrice int64 `json:"unit_price"`
}

// AddCatalogItemRequestDTO adds a catalog product. When only CatalogID is
// given the name and price are looked up in the catalog.
type AddCatalogItemRequestDTO struct {
	CatalogID   string `json:"catalog_id"`
	DisplayName string `json:"display_name"`
	UnitPrice   int64  `json:"unit_price"`
}

type SetQuantityRequestDTO struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) Routes(r chi.Router) {
	r.Get("/", h.GetCart)
	r.Post("/adhoc", h.AddAdHoc)
	r.Post("/products", h.AddCatalogItem)
	r.Route("/items/{identity}", func(r chi.Router) {
		r.Put("/", h.SetQuantity)
		r.Delete("/", h.Remove)
		r.Post("/increment", h.Increment)
		r.Post("/decrement", h.Decrement)
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toCartView(h.svc.Snapshot(), h.svc.Committing()))
}

func (h *CartHandler) AddAdHoc(w http.ResponseWriter, r *http.Request) {
	var req AddAdHocRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}

	snap, err := h.svc.AddAdHoc(req.UnitPrice)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartView(snap, false))
}

func (h *CartHandler) AddCatalogItem(w http.ResponseWriter, r *http.Request) {
	var req AddCatalogItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.CatalogID) == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "catalog_id is required")
		return
	}

	var (
		snap cartapp.Snapshot
		err  error
	)
	if req.DisplayName == "" && req.UnitPrice == 0 {
		snap, err = h.svc.AddProduct(r.Context(), req.CatalogID)
	} else {
		snap, err = h.svc.AddCatalogItem(req.CatalogID, req.DisplayName, req.UnitPrice)
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartView(snap, false))
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.withIdentity(w, r, h.svc.Increment)
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.withIdentity(w, r, h.svc.Decrement)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.withIdentity(w, r, h.svc.Remove)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}
	h.withIdentity(w, r, func(id cartdomain.Identity) (cartapp.Snapshot, error) {
		return h.svc.SetQuantity(id, req.Quantity)
	})
}

func (h *CartHandler) withIdentity(w http.ResponseWriter, r *http.Request, fn func(cartdomain.Identity) (cartapp.Snapshot, error)) {
	raw, err := url.PathUnescape(chi.URLParam(r, "identity"))
	if err != nil || raw == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid item identity")
		return
	}

	snap, err := fn(cartdomain.Identity(raw))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartView(snap, false))
}
