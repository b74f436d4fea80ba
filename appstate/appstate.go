// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appstate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kaylew1421/commonkind/client"
	"github.com/kaylew1421/commonkind/models"
)

// ActivityCap is the maximum number of retained activity entries.
const ActivityCap = 80

// LocalVoucherTTL matches the server's voucher validity window and is
// used when a voucher has to be fabricated offline.
const LocalVoucherTTL = 2 * time.Hour

var ErrNoActiveVoucher = errors.New("no active voucher")

// RedemptionRecord is one entry in the local redemption log.
type RedemptionRecord struct {
	HubID     string `json:"hubId"`
	CreatedAt int64  `json:"createdAt"` // epoch millis
}

// ApplicationInput is the become-a-hub form payload.
type ApplicationInput struct {
	BusinessName string
	Address      string
	Phone        string
	Offer        string
	DailyCap     int
	Email        string
}

// State mirrors the server's hub registry plus everything the app
// keeps locally: the active voucher, donations, hub applications,
// the redemption log, and a capped activity feed. All methods are
// safe for concurrent use.
type State struct {
	mu sync.Mutex

	api *client.Client

	hubs         []models.Hub
	applications []models.HubApplication
	donations    []models.Donation
	fraudFlags   []models.FraudFlag
	activity     []models.ActivityEvent
	redeemLog    []RedemptionRecord
	active       *models.Voucher
	adminToken   string
}

// New creates a State seeded with the built-in fallback hubs so the
// app is usable before (or without) a successful server fetch.
func New(api *client.Client) *State {
	return &State{
		api:  api,
		hubs: fallbackHubs(),
	}
}

// RefreshHubs replaces the hub mirror with the server's list. On
// failure (or an empty list) the current hubs are kept and the error
// is returned so the caller can surface it.
func (s *State) RefreshHubs(ctx context.Context) error {
	hubs, err := s.api.FetchHubs(ctx)
	if err != nil {
		return fmt.Errorf("appstate.RefreshHubs: %w", err)
	}
	if len(hubs) == 0 {
		return nil
	}

	s.mu.Lock()
	s.hubs = hubs
	s.mu.Unlock()
	return nil
}

// Hubs returns a copy of the hub mirror.
func (s *State) Hubs() []models.Hub {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Hub, len(s.hubs))
	copy(out, s.hubs)
	return out
}

// ActiveVoucher returns the currently held voucher, or nil.
func (s *State) ActiveVoucher() *models.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	v := *s.active
	return &v
}

// RequestVoucher issues a voucher for the hub. familySize and notes
// come from the request form and only affect the activity message.
// When the server call fails a local voucher is fabricated with the
// standard validity window so the user is never blocked; the error is
// still returned.
func (s *State) RequestVoucher(ctx context.Context, hub models.Hub, familySize int, notes string) (models.Voucher, error) {
	now := time.Now().UnixMilli()

	issued, err := s.api.IssueVoucher(ctx, hub.ID)

	var v models.Voucher
	if err == nil {
		v = models.Voucher{
			ID:        issued.ID,
			HubID:     hub.ID,
			Status:    models.VoucherIssued,
			IssuedAt:  now,
			ExpiresAt: issued.ExpiresAt,
		}
	} else {
		v = models.Voucher{
			ID:        "VOUCHER-" + uuid.NewString(),
			HubID:     hub.ID,
			Status:    models.VoucherIssued,
			IssuedAt:  now,
			ExpiresAt: now + LocalVoucherTTL.Milliseconds(),
		}
	}

	msg := fmt.Sprintf("Voucher issued for %s.", hub.Name)
	if familySize > 1 {
		msg += fmt.Sprintf(" Family of %d.", familySize)
	}
	if notes != "" {
		msg += fmt.Sprintf(" (notes: %s)", notes)
	}

	s.mu.Lock()
	s.active = &v
	s.logActivityLocked(models.EventVoucherIssued, msg)
	s.mu.Unlock()

	return v, err
}

// UseVoucher redeems the active voucher against the server. The local
// state is updated optimistically no matter what the server said; any
// server error is returned alongside so a UI can show the drift.
func (s *State) UseVoucher(ctx context.Context, voucherID string) error {
	s.mu.Lock()
	if s.active == nil || s.active.ID != voucherID {
		s.mu.Unlock()
		return ErrNoActiveVoucher
	}
	s.mu.Unlock()

	_, err := s.api.RedeemVoucher(ctx, voucherID)

	s.mu.Lock()
	s.redeemLocked(voucherID)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("appstate.UseVoucher: %w", err)
	}
	return nil
}

// RedeemLocal is the scanner path: redeem the active voucher without
// touching the server. Returns false when the id does not match.
func (s *State) RedeemLocal(voucherID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != voucherID {
		return false
	}
	s.redeemLocked(voucherID)
	return true
}

// redeemLocked applies the optimistic redemption: decrement the hub's
// remaining count (floor 0), log it, and drop the active voucher.
// Caller holds the mutex.
func (s *State) redeemLocked(voucherID string) {
	v := s.active
	if v == nil || v.ID != voucherID {
		return
	}

	hubName := "Hub"
	for i := range s.hubs {
		if s.hubs[i].ID == v.HubID {
			if s.hubs[i].VouchersRemaining > 0 {
				s.hubs[i].VouchersRemaining--
			}
			hubName = s.hubs[i].Name
			break
		}
	}

	s.redeemLog = append([]RedemptionRecord{{HubID: v.HubID, CreatedAt: time.Now().UnixMilli()}}, s.redeemLog...)
	s.logActivityLocked(models.EventVoucherRedeemed, fmt.Sprintf("Voucher redeemed at %s.", hubName))
	s.active = nil
}

// Donate records a donation. A nil hub means a general donation.
func (s *State) Donate(amount int, hub *models.Hub) models.Donation {
	d := models.Donation{
		ID:        "DON-" + uuid.NewString(),
		HubID:     "general",
		Amount:    amount,
		CreatedAt: time.Now().UnixMilli(),
	}
	msg := fmt.Sprintf("Donation of $%d.", amount)
	if hub != nil {
		d.HubID = hub.ID
		msg = fmt.Sprintf("Donation of $%d to %s.", amount, hub.Name)
	}

	s.mu.Lock()
	s.donations = append([]models.Donation{d}, s.donations...)
	s.logActivityLocked(models.EventDonation, msg)
	s.mu.Unlock()
	return d
}

// SubmitApplication records a pending become-a-hub application.
func (s *State) SubmitApplication(input ApplicationInput) models.HubApplication {
	app := models.HubApplication{
		ID:           "APP-" + uuid.NewString(),
		BusinessName: input.BusinessName,
		Address:      input.Address,
		Phone:        input.Phone,
		Offer:        input.Offer,
		DailyCap:     input.DailyCap,
		Email:        input.Email,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Status:       models.AppPending,
	}

	s.mu.Lock()
	s.applications = append([]models.HubApplication{app}, s.applications...)
	s.logActivityLocked(models.EventApplicationSubmitted, fmt.Sprintf("New Hub Application from %s.", input.BusinessName))
	s.mu.Unlock()
	return app
}

// ApproveApplication marks an application approved and spawns a hub
// from it, locating it by the ZIP code in the application's address.
func (s *State) ApproveApplication(id, hubType string) (models.Hub, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.applications {
		if s.applications[i].ID != id {
			continue
		}
		app := s.applications[i]

		lat, lng := zipToLatLng(app.Address)
		hub := models.Hub{
			ID:                "hub-" + uuid.NewString(),
			Name:              app.BusinessName,
			Address:           app.Address,
			Lat:               lat,
			Lng:               lng,
			Hours:             "TBD",
			Offer:             app.Offer,
			DailyCap:          app.DailyCap,
			VouchersRemaining: app.DailyCap,
			Type:              hubType,
			Phone:             app.Phone,
			Requirements:      []string{"Photo ID (any)", "Self-attest financial need"},
			SelfAttestation:   true,
		}

		s.hubs = append([]models.Hub{hub}, s.hubs...)
		s.applications[i].Status = models.AppApproved
		s.logActivityLocked(models.EventHubApproved, fmt.Sprintf("Hub approved: %s.", app.BusinessName))
		return hub, true
	}
	return models.Hub{}, false
}

// RejectApplication marks an application rejected.
func (s *State) RejectApplication(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.applications {
		if s.applications[i].ID == id {
			s.applications[i].Status = models.AppRejected
			return true
		}
	}
	return false
}

// Applications returns a copy of the application list, newest first.
func (s *State) Applications() []models.HubApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HubApplication, len(s.applications))
	copy(out, s.applications)
	return out
}

// Activity returns a copy of the activity feed, newest first.
func (s *State) Activity() []models.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ActivityEvent, len(s.activity))
	copy(out, s.activity)
	return out
}

// SetAdminToken stores the admin bearer token locally.
func (s *State) SetAdminToken(token string) {
	s.mu.Lock()
	s.adminToken = token
	s.mu.Unlock()
}

// AdminToken returns the stored admin bearer token, if any.
func (s *State) AdminToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminToken
}

// logActivityLocked prepends an event and trims the feed to
// ActivityCap. Caller holds the mutex.
func (s *State) logActivityLocked(eventType, message string) {
	event := models.ActivityEvent{
		ID:        "ACT-" + uuid.NewString(),
		Type:      eventType,
		CreatedAt: time.Now().UnixMilli(),
		Message:   message,
	}
	s.activity = append([]models.ActivityEvent{event}, s.activity...)
	if len(s.activity) > ActivityCap {
		s.activity = s.activity[:ActivityCap]
	}
}

var zipPattern = regexp.MustCompile(`(\d{5})(?:-\d{4})?$`)

// zipToLatLng maps a trailing ZIP code in an address to demo
// coordinates, defaulting to the Alvarado area.
func zipToLatLng(addr string) (float64, float64) {
	m := zipPattern.FindStringSubmatch(addr)
	zip := ""
	if m != nil {
		zip = m[1]
	}
	switch zip {
	case "76028":
		return 32.536, -97.325
	default:
		return 32.4057, -97.2136
	}
}

// fallbackHubs is the offline hub list used until a server fetch
// succeeds.
func fallbackHubs() []models.Hub {
	return []models.Hub{
		{
			ID: "hub-mock-1", Name: "Alvarado Community Kitchen",
			Address: "101 Main St, Alvarado, TX 76009",
			Lat:     32.4057, Lng: -97.2136,
			Hours: "Mon-Fri 11am-2pm", Offer: "Hot lunch",
			DailyCap: 20, VouchersRemaining: 20,
			Type: models.HubTypeChurch, Phone: "(817) 555-0101",
			Requirements:    []string{"Photo ID (any)", "Self-attest financial need"},
			SelfAttestation: true,
		},
		{
			ID: "hub-mock-2", Name: "Burleson Corner Grocery",
			Address: "230 SW Wilshire Blvd, Burleson, TX 76028",
			Lat:     32.536, Lng: -97.325,
			Hours: "Daily 9am-8pm", Offer: "$10 grocery credit",
			DailyCap: 15, VouchersRemaining: 15,
			Type: models.HubTypeGrocery, Phone: "(817) 555-0102",
			SelfAttestation: true,
		},
		{
			ID: "hub-mock-3", Name: "The Daily Bread Diner",
			Address: "14 E Highway 67, Alvarado, TX 76009",
			Lat:     32.407, Lng: -97.21,
			Hours: "Tue-Sun 7am-3pm", Offer: "Breakfast plate",
			DailyCap: 10, VouchersRemaining: 10,
			Type: models.HubTypeRestaurant, Phone: "(817) 555-0103",
		},
	}
}
