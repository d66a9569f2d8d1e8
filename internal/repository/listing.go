package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/agrica/voice-gateway-go/internal/model"
)

type ListingRepository interface {
	FindByID(ctx context.Context, id string) (*model.CropListing, error)
	List(ctx context.Context, filter model.ListingFilter) ([]model.CropListing, error)
	Create(ctx context.Context, params model.CreateListingParams) (*model.CropListing, error)
	UpdateVerification(ctx context.Context, id string, status model.VerificationStatus, score float64, reasons []string) error
}

type listingRepo struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) FindByID(ctx context.Context, id string) (*model.CropListing, error) {
	var listing model.CropListing
	err := r.db.GetContext(ctx, &listing, `
		SELECT * FROM crop_listings WHERE id = $1
	`, id)
	return HandleNotFound(&listing, err)
}

func (r *listingRepo) List(ctx context.Context, filter model.ListingFilter) ([]model.CropListing, error) {
	var listings []model.CropListing
	err := r.db.SelectContext(ctx, &listings, `
		SELECT * FROM crop_listings
		WHERE status = 'active'
		AND ($1 = '' OR crop_type ILIKE '%' || $1 || '%')
		AND ($2 = '' OR location ILIKE '%' || $2 || '%')
		AND (NOT $3 OR verification_status = 'verified')
		ORDER BY created_at DESC
	`, filter.CropType, filter.Location, filter.VerifiedOnly)
	return listings, err
}

func (r *listingRepo) Create(ctx context.Context, params model.CreateListingParams) (*model.CropListing, error) {
	var listing model.CropListing
	err := r.db.GetContext(ctx, &listing, `
		INSERT INTO crop_listings
			(id, farmer_id, phone_number, crop_type, quantity, unit, expected_price,
			 location, harvest_date, status, verification_status, verification_reasons, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active', 'unverified', '{}', $10)
		RETURNING *
	`, params.ID, params.FarmerID, params.PhoneNumber, params.CropType,
		params.Quantity, params.Unit, params.ExpectedPrice, params.Location,
		params.HarvestDate, params.Source)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) UpdateVerification(ctx context.Context, id string, status model.VerificationStatus, score float64, reasons []string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE crop_listings SET
			verification_status = $2,
			verification_score = $3,
			verification_reasons = $4,
			updated_at = NOW()
		WHERE id = $1
	`, id, status, score, pq.StringArray(reasons))
	return err
}
