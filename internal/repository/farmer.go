package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
	"github.com/agrica/voice-gateway-go/internal/model"
)

const pqUniqueViolation = "23505"

type FarmerRepository interface {
	FindByPhone(ctx context.Context, phoneNumber string) (*model.Farmer, error)
	Upsert(ctx context.Context, params model.UpsertFarmerParams) (*model.Farmer, error)
	CreateAccount(ctx context.Context, params model.CreateAccountParams) (*model.Farmer, error)
}

type farmerRepo struct {
	db *sqlx.DB
}

func NewFarmerRepository(db *sqlx.DB) FarmerRepository {
	return &farmerRepo{db: db}
}

func (r *farmerRepo) FindByPhone(ctx context.Context, phoneNumber string) (*model.Farmer, error) {
	var farmer model.Farmer
	err := r.db.GetContext(ctx, &farmer, `
		SELECT * FROM farmers WHERE phone_number = $1
	`, phoneNumber)
	return HandleNotFound(&farmer, err)
}

// Upsert writes profile fields keyed by phone number. Credentials of an
// existing web account are left untouched.
func (r *farmerRepo) Upsert(ctx context.Context, params model.UpsertFarmerParams) (*model.Farmer, error) {
	var farmer model.Farmer
	err := r.db.GetContext(ctx, &farmer, `
		INSERT INTO farmers (id, full_name, phone_number, region, woreda, preferred_language)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (phone_number) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			region = EXCLUDED.region,
			woreda = EXCLUDED.woreda,
			preferred_language = EXCLUDED.preferred_language,
			updated_at = NOW()
		RETURNING *
	`, params.ID, params.FullName, params.PhoneNumber, params.Region,
		params.Woreda, params.PreferredLanguage)
	if err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *farmerRepo) CreateAccount(ctx context.Context, params model.CreateAccountParams) (*model.Farmer, error) {
	var farmer model.Farmer
	err := r.db.GetContext(ctx, &farmer, `
		INSERT INTO farmers
			(id, full_name, phone_number, region, woreda, preferred_language, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	`, params.ID, params.FullName, params.PhoneNumber, params.Region,
		params.Woreda, params.PreferredLanguage, params.PasswordHash, params.Role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, apperrors.AlreadyExists("Phone number")
		}
		return nil, err
	}
	return &farmer, nil
}
