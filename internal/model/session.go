package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Session is the sole record of where a phone call stands in the dialogue.
// One row per telephony session id; rows are reset, never deleted, while the
// call is live.
type Session struct {
	SessionID    string       `db:"session_id" json:"sessionId"`
	CallerNumber string       `db:"caller_number" json:"callerNumber"`
	State        SessionState `db:"state" json:"state"`
	Intent       Intent       `db:"intent" json:"intent"`
	Language     string       `db:"language" json:"language"`
	Data         SessionData  `db:"data" json:"data"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

// SessionData carries the partially collected fields of the active sub-flow.
// At most one draft is non-nil at a time; a session reset clears both.
type SessionData struct {
	Registration *RegistrationDraft `json:"registration,omitempty"`
	Sell         *SellDraft         `json:"sell,omitempty"`
}

type RegistrationDraft struct {
	FullName string `json:"fullName,omitempty"`
	Region   string `json:"region,omitempty"`
	Woreda   string `json:"woreda,omitempty"`
}

type SellDraft struct {
	FarmerID      *string `json:"farmerId,omitempty"`
	CropType      string  `json:"cropType,omitempty"`
	Quantity      float64 `json:"quantity,omitempty"`
	Unit          Unit    `json:"unit,omitempty"`
	ExpectedPrice float64 `json:"expectedPrice,omitempty"`
	Location      string  `json:"location,omitempty"`
}

func (d SessionData) IsEmpty() bool {
	return d.Registration == nil && d.Sell == nil
}

// Value stores SessionData as JSONB.
func (d SessionData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *SessionData) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = SessionData{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into SessionData", src)
	}
}

type CreateSessionParams struct {
	SessionID    string
	CallerNumber string
}
