package model

import "time"

// Farmer is a person identified by phone number. Rows are written by the
// registration sub-flow, by web listing creation, and by web sign-up.
type Farmer struct {
	ID                string    `db:"id" json:"id"`
	FullName          string    `db:"full_name" json:"fullName"`
	PhoneNumber       string    `db:"phone_number" json:"phoneNumber"`
	Region            string    `db:"region" json:"region"`
	Woreda            string    `db:"woreda" json:"woreda"`
	PreferredLanguage string    `db:"preferred_language" json:"preferredLanguage"`
	PasswordHash      *string   `db:"password_hash" json:"-"`
	Role              Role      `db:"role" json:"role"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

type UpsertFarmerParams struct {
	ID                string
	FullName          string
	PhoneNumber       string
	Region            string
	Woreda            string
	PreferredLanguage string
}

type CreateAccountParams struct {
	ID                string
	FullName          string
	PhoneNumber       string
	Region            string
	Woreda            string
	PreferredLanguage string
	PasswordHash      string
	Role              Role
}
