package model

// SessionState is the dialogue engine's position within a call.
type SessionState string

const (
	StateAwaitingIntent SessionState = "awaiting_intent"
	StateAdvice         SessionState = "advice"

	StateRegisterFullName SessionState = "register_full_name"
	StateRegisterRegion   SessionState = "register_region"
	StateRegisterWoreda   SessionState = "register_woreda"
	StateRegisterLanguage SessionState = "register_language"

	StateSellCropType    SessionState = "sell_crop_type"
	StateSellQuantity    SessionState = "sell_quantity"
	StateSellUnit        SessionState = "sell_unit"
	StateSellPrice       SessionState = "sell_price"
	StateSellLocation    SessionState = "sell_location"
	StateSellHarvestDate SessionState = "sell_harvest_date"

	StatePriceCropType SessionState = "price_crop_type"
)

// AllStates lists every value the engine may ever write.
var AllStates = []SessionState{
	StateAwaitingIntent, StateAdvice,
	StateRegisterFullName, StateRegisterRegion, StateRegisterWoreda, StateRegisterLanguage,
	StateSellCropType, StateSellQuantity, StateSellUnit, StateSellPrice,
	StateSellLocation, StateSellHarvestDate,
	StatePriceCropType,
}

type Intent string

const (
	IntentUnknown        Intent = "unknown"
	IntentFarmingAdvice  Intent = "farming_advice"
	IntentRegisterFarmer Intent = "register_farmer"
	IntentSellCrops      Intent = "sell_crops"
	IntentCheckPrices    Intent = "check_prices"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type Unit string

const (
	UnitKg      Unit = "kg"
	UnitQuintal Unit = "quintal"
)

type ListingSource string

const (
	SourceIVR ListingSource = "ivr"
	SourceWeb ListingSource = "web"
)

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
	ListingStatusClosed ListingStatus = "closed"
)

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationFailed     VerificationStatus = "failed"
)

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)
