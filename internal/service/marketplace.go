package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/ai"
	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/repository"
)

// verifiedScoreThreshold is the minimum AI trust score for a listing to be
// marked verified.
const verifiedScoreThreshold = 70

// verificationTimeout bounds the background verification round trip.
const verificationTimeout = 60 * time.Second

// Verifier scores how trustworthy a listing sounds.
type Verifier interface {
	ScoreListing(ctx context.Context, description string) (ai.VerificationReply, error)
}

// MarketplaceService is the shared write path behind both the IVR sell flow
// and the web listing endpoints. Listing creation never waits on
// verification; scoring runs in the background and only annotates the row.
type MarketplaceService struct {
	farmers  repository.FarmerRepository
	listings repository.ListingRepository
	verifier Verifier
}

func NewMarketplaceService(
	farmers repository.FarmerRepository,
	listings repository.ListingRepository,
	verifier Verifier,
) *MarketplaceService {
	return &MarketplaceService{
		farmers:  farmers,
		listings: listings,
		verifier: verifier,
	}
}

func (s *MarketplaceService) FindFarmerByPhone(ctx context.Context, phoneNumber string) (*model.Farmer, error) {
	return s.farmers.FindByPhone(ctx, phoneNumber)
}

// UpsertFarmer writes a farmer profile keyed by phone number. The generated
// id only lands when the row is new; conflicts keep the existing id.
func (s *MarketplaceService) UpsertFarmer(ctx context.Context, params model.UpsertFarmerParams) (*model.Farmer, error) {
	if params.FullName == "" {
		return nil, apperrors.MissingRequired("fullName")
	}
	if params.PhoneNumber == "" {
		return nil, apperrors.MissingRequired("phoneNumber")
	}
	params.ID = uuid.NewString()
	return s.farmers.Upsert(ctx, params)
}

// CreateListing validates and persists a sell offer, then queues background
// verification.
func (s *MarketplaceService) CreateListing(ctx context.Context, params model.CreateListingParams) (*model.CropListing, error) {
	if params.CropType == "" {
		return nil, apperrors.MissingRequired("cropType")
	}
	if params.PhoneNumber == "" {
		return nil, apperrors.MissingRequired("phoneNumber")
	}
	if params.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity", "must be a positive number")
	}
	if params.ExpectedPrice <= 0 {
		return nil, apperrors.InvalidInput("expectedPrice", "must be a positive number")
	}
	switch params.Unit {
	case model.UnitKg, model.UnitQuintal:
	default:
		return nil, apperrors.InvalidInput("unit", "must be kg or quintal")
	}
	switch params.Source {
	case model.SourceIVR, model.SourceWeb:
	default:
		return nil, apperrors.InvalidInput("source", "must be ivr or web")
	}

	params.ID = uuid.NewString()
	listing, err := s.listings.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	s.QueueVerification(listing.ID)
	return listing, nil
}

func (s *MarketplaceService) ListListings(ctx context.Context, filter model.ListingFilter) ([]model.CropListing, error) {
	return s.listings.List(ctx, filter)
}

func (s *MarketplaceService) GetListing(ctx context.Context, id string) (*model.CropListing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperrors.NotFound("Listing")
	}
	return listing, nil
}

// QueueVerification scores a listing in the background. Creation already
// succeeded; nothing here is allowed to surface to the caller.
func (s *MarketplaceService) QueueVerification(listingID string) {
	if s.verifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), verificationTimeout)
		defer cancel()
		if err := s.VerifyListing(ctx, listingID); err != nil {
			log.Warn().Err(err).Str("listingId", listingID).Msg("background verification failed")
		}
	}()
}

// VerifyListing runs the AI trust check for one listing and records the
// outcome. A collaborator failure leaves the listing unverified with the
// failure noted, never in the pending state.
func (s *MarketplaceService) VerifyListing(ctx context.Context, listingID string) error {
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return err
	}

	if err := s.listings.UpdateVerification(ctx, listingID, model.VerificationPending, 0, nil); err != nil {
		return err
	}

	reply, err := s.verifier.ScoreListing(ctx, describeListing(listing))
	if err != nil {
		reasons := []string{"automatic verification unavailable"}
		if updateErr := s.listings.UpdateVerification(ctx, listingID, model.VerificationUnverified, 0, reasons); updateErr != nil {
			return updateErr
		}
		return err
	}

	status := model.VerificationFailed
	if reply.Score >= verifiedScoreThreshold {
		status = model.VerificationVerified
	}

	if err := s.listings.UpdateVerification(ctx, listingID, status, reply.Score, reply.Reasons); err != nil {
		return err
	}

	log.Info().
		Str("listingId", listingID).
		Str("status", string(status)).
		Float64("score", reply.Score).
		Msg("listing verification completed")
	return nil
}

func describeListing(listing *model.CropListing) string {
	return fmt.Sprintf("%s, %.2f %s, expected price %.2f ETB, location %s, harvest %s",
		listing.CropType, listing.Quantity, listing.Unit,
		listing.ExpectedPrice, listing.Location, listing.HarvestDate)
}
