package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/repository"
)

const minPasswordLength = 8

// AuthService handles web sign-up and login for farmers. IVR callers never
// touch this path; their rows simply have no password hash.
type AuthService struct {
	farmers repository.FarmerRepository
}

func NewAuthService(farmers repository.FarmerRepository) *AuthService {
	return &AuthService{farmers: farmers}
}

type RegisterParams struct {
	FullName          string `json:"fullName"`
	PhoneNumber       string `json:"phoneNumber"`
	Password          string `json:"password"`
	Region            string `json:"region"`
	Woreda            string `json:"woreda"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// Register creates a web account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*model.Farmer, error) {
	if params.FullName == "" {
		return nil, apperrors.MissingRequired("fullName")
	}
	if params.PhoneNumber == "" {
		return nil, apperrors.MissingRequired("phoneNumber")
	}
	if len(params.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password")
	}

	language := params.PreferredLanguage
	if language == "" {
		language = "amh"
	}

	farmer, err := s.farmers.CreateAccount(ctx, model.CreateAccountParams{
		ID:                uuid.NewString(),
		FullName:          params.FullName,
		PhoneNumber:       params.PhoneNumber,
		Region:            params.Region,
		Woreda:            params.Woreda,
		PreferredLanguage: language,
		PasswordHash:      string(hash),
		Role:              model.RoleFarmer,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("farmerId", farmer.ID).Msg("web account created")
	return farmer, nil
}

// Login checks credentials against the stored hash. Accounts created through
// the IVR have no password and cannot log in until they register on the web.
func (s *AuthService) Login(ctx context.Context, phoneNumber, password string) (*model.Farmer, error) {
	farmer, err := s.farmers.FindByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if farmer == nil || farmer.PasswordHash == nil {
		return nil, apperrors.Unauthorized("Invalid phone number or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*farmer.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid phone number or password")
	}
	return farmer, nil
}
