package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
	"github.com/agrica/voice-gateway-go/internal/httputil"
	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/service"
	"github.com/agrica/voice-gateway-go/internal/telephony"
)

// MarketHandler exposes the marketplace read and write paths to web clients.
type MarketHandler struct {
	market *service.MarketplaceService
}

func NewMarketHandler(market *service.MarketplaceService) *MarketHandler {
	return &MarketHandler{market: market}
}

func (h *MarketHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/listings", h.ListListings)
	r.Post("/listings", h.CreateListing)
	r.Get("/listings/{id}", h.GetListing)
	r.Patch("/listings/{id}/verify", h.VerifyListing)
	return r
}

func (h *MarketHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := model.ListingFilter{
		CropType:     query.Get("cropType"),
		Location:     query.Get("location"),
		VerifiedOnly: query.Get("verified") == "true",
	}

	listings, err := h.market.ListListings(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if listings == nil {
		listings = []model.CropListing{}
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

type createListingRequest struct {
	FarmerID      *string    `json:"farmerId"`
	PhoneNumber   string     `json:"phoneNumber"`
	CropType      string     `json:"cropType"`
	Quantity      float64    `json:"quantity"`
	Unit          model.Unit `json:"unit"`
	ExpectedPrice float64    `json:"expectedPrice"`
	Location      string     `json:"location"`
	HarvestDate   string     `json:"harvestDate"`
}

func (h *MarketHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.ValidationError("Invalid JSON body"))
		return
	}

	phone := req.PhoneNumber
	if phone != "" {
		phone = telephony.NormalizeCallerNumber(phone)
	}

	listing, err := h.market.CreateListing(r.Context(), model.CreateListingParams{
		FarmerID:      req.FarmerID,
		PhoneNumber:   phone,
		CropType:      req.CropType,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		ExpectedPrice: req.ExpectedPrice,
		Location:      req.Location,
		HarvestDate:   req.HarvestDate,
		Source:        model.SourceWeb,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, listing)
}

func (h *MarketHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.market.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listing)
}

// VerifyListing re-runs the AI trust check synchronously.
func (h *MarketHandler) VerifyListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.market.VerifyListing(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	listing, err := h.market.GetListing(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listing)
}
