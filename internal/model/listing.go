package model

import (
	"time"

	"github.com/lib/pq"
)

// CropListing is a sell offer, created at the terminal step of the IVR sell
// sub-flow or from the web form. Verification fields are filled in later by
// the AI verifier and never gate listing creation.
type CropListing struct {
	ID                  string             `db:"id" json:"id"`
	FarmerID            *string            `db:"farmer_id" json:"farmerId,omitempty"`
	PhoneNumber         string             `db:"phone_number" json:"phoneNumber"`
	CropType            string             `db:"crop_type" json:"cropType"`
	Quantity            float64            `db:"quantity" json:"quantity"`
	Unit                Unit               `db:"unit" json:"unit"`
	ExpectedPrice       float64            `db:"expected_price" json:"expectedPrice"`
	Location            string             `db:"location" json:"location"`
	HarvestDate         string             `db:"harvest_date" json:"harvestDate"`
	Status              ListingStatus      `db:"status" json:"status"`
	VerificationStatus  VerificationStatus `db:"verification_status" json:"verificationStatus"`
	VerificationScore   float64            `db:"verification_score" json:"verificationScore"`
	VerificationReasons pq.StringArray     `db:"verification_reasons" json:"verificationReasons"`
	Source              ListingSource      `db:"source" json:"source"`
	CreatedAt           time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updatedAt"`
}

type CreateListingParams struct {
	ID            string
	FarmerID      *string
	PhoneNumber   string
	CropType      string
	Quantity      float64
	Unit          Unit
	ExpectedPrice float64
	Location      string
	HarvestDate   string
	Source        ListingSource
}

type ListingFilter struct {
	CropType     string
	Location     string
	VerifiedOnly bool
}
