package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
	"github.com/agrica/voice-gateway-go/internal/httputil"
	"github.com/agrica/voice-gateway-go/internal/service"
	"github.com/agrica/voice-gateway-go/internal/telephony"
)

// AuthHandler exposes web sign-up and login.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	return r
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.ValidationError("Invalid JSON body"))
		return
	}
	if req.PhoneNumber != "" {
		req.PhoneNumber = telephony.NormalizeCallerNumber(req.PhoneNumber)
	}

	farmer, err := h.auth.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, farmer)
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.ValidationError("Invalid JSON body"))
		return
	}
	if req.PhoneNumber != "" {
		req.PhoneNumber = telephony.NormalizeCallerNumber(req.PhoneNumber)
	}

	farmer, err := h.auth.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, farmer)
}
