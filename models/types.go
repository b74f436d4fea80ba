// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Hub type constants
const (
	HubTypeRestaurant = "Restaurant"
	HubTypeGrocery    = "Grocery"
	HubTypeChurch     = "Church"
	HubTypeLibrary    = "Library"
)

// Voucher status constants
const (
	VoucherIssued   = "issued"
	VoucherRedeemed = "redeemed"
	// VoucherExpired is a client-side status only; the server never sets it.
	VoucherExpired = "expired"
)

// Application status constants
const (
	AppPending  = "pending"
	AppApproved = "approved"
	AppRejected = "rejected"
)

// Request types

type IssueVoucherRequest struct {
	HubID string `json:"hubId"`
}

type RedeemVoucherRequest struct {
	ID string `json:"id"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type CreateHubRequest struct {
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	Hours           string   `json:"hours"`
	Offer           string   `json:"offer"`
	DailyCap        int      `json:"dailyCap"`
	Type            string   `json:"type"`
	Phone           string   `json:"phone"`
	Requirements    []string `json:"requirements,omitempty"`
	SelfAttestation bool     `json:"selfAttestation,omitempty"`
}

// UpdateHubRequest carries a partial hub edit. Pointer fields
// distinguish "not sent" from zero values.
type UpdateHubRequest struct {
	Name              *string   `json:"name,omitempty"`
	Address           *string   `json:"address,omitempty"`
	Lat               *float64  `json:"lat,omitempty"`
	Lng               *float64  `json:"lng,omitempty"`
	Hours             *string   `json:"hours,omitempty"`
	Offer             *string   `json:"offer,omitempty"`
	DailyCap          *int      `json:"dailyCap,omitempty"`
	VouchersRemaining *int      `json:"vouchersRemaining,omitempty"`
	Type              *string   `json:"type,omitempty"`
	Phone             *string   `json:"phone,omitempty"`
	Requirements      *[]string `json:"requirements,omitempty"`
	SelfAttestation   *bool     `json:"selfAttestation,omitempty"`
}

type AskAIRequest struct {
	Question string `json:"question"`
	Locale   string `json:"locale"`
	Hubs     []Hub  `json:"hubs,omitempty"`
}

// Response types

type IssueVoucherResponse struct {
	ID        string `json:"id"`
	HubID     string `json:"hubId"`
	ExpiresAt int64  `json:"expiresAt"` // epoch millis
}

type RedeemVoucherResponse struct {
	OK      bool `json:"ok"`
	Already bool `json:"already,omitempty"`
}

type AdminLoginResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

type AdminMeResponse struct {
	OK   bool   `json:"ok"`
	Role string `json:"role"`
}

type HubResponse struct {
	OK  bool `json:"ok"`
	Hub Hub  `json:"hub"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type AskAIResponse struct {
	OK     bool   `json:"ok"`
	Answer string `json:"answer"`
	Mock   bool   `json:"mock,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Hub struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Lat               float64  `json:"lat"`
	Lng               float64  `json:"lng"`
	Hours             string   `json:"hours"`
	Offer             string   `json:"offer"`
	DailyCap          int      `json:"dailyCap"`
	VouchersRemaining int      `json:"vouchersRemaining"`
	Type              string   `json:"type"`
	Phone             string   `json:"phone"`
	Requirements      []string `json:"requirements,omitempty"`
	SelfAttestation   bool     `json:"selfAttestation,omitempty"`
}

type Voucher struct {
	ID        string `json:"id"`
	HubID     string `json:"hubId"`
	Status    string `json:"status"`
	IssuedAt  int64  `json:"issuedAt"`  // epoch millis
	ExpiresAt int64  `json:"expiresAt"` // epoch millis
}

type AdminToken struct {
	Token     string `json:"-"` // Never expose in JSON
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Client-side types (kept in browser local storage in the web app;
// the Go client mirrors them in appstate and never sends them to the server)

type HubApplication struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Offer        string `json:"offer"`
	DailyCap     int    `json:"dailyCap"`
	Email        string `json:"email"`
	CreatedAt    string `json:"createdAt"` // ISO timestamp
	Status       string `json:"status"`
}

type Donation struct {
	ID        string `json:"id"`
	HubID     string `json:"hubId"` // "general" if not tied to a hub
	Amount    int    `json:"amount"`
	CreatedAt int64  `json:"createdAt"` // epoch millis
}

// Activity event type constants
const (
	EventDonation             = "donation"
	EventVoucherIssued        = "voucher_issued"
	EventVoucherRedeemed      = "voucher_redeemed"
	EventApplicationSubmitted = "application_submitted"
	EventHubApproved          = "hub_approved"
	EventHubCreated           = "hub_created"
	EventHubUpdated           = "hub_updated"
	EventHubDeleted           = "hub_deleted"
	EventFraudFlag            = "fraud_flag"
	EventFraudResolved        = "fraud_resolved"
)

// Fraud flag status constants
const (
	FraudOpen     = "open"
	FraudResolved = "resolved"
)

type ActivityEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"` // epoch millis
	Message   string `json:"message"`
}

type FraudFlag struct {
	ID        string `json:"id"`
	HubID     string `json:"hubId"`
	HubName   string `json:"hubName"`
	Title     string `json:"title"` // e.g. "High redemption velocity"
	Details   string `json:"details,omitempty"`
	Status    string `json:"status"` // open | resolved
	CreatedAt int64  `json:"createdAt"` // epoch millis
}
