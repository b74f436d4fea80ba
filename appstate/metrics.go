// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appstate

import (
	"time"

	"github.com/kaylew1421/commonkind/models"
)

// TotalDonations returns the sum of all donation amounts.
func (s *State) TotalDonations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, d := range s.donations {
		total += d.Amount
	}
	return total
}

// MealsFunded returns the number of recorded redemptions.
func (s *State) MealsFunded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redeemLog)
}

// Redeemed24h returns the number of redemptions in the last 24 hours.
func (s *State) Redeemed24h() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
	count := 0
	for _, r := range s.redeemLog {
		if r.CreatedAt >= cutoff {
			count++
		}
	}
	return count
}

// PendingCount returns the number of pending hub applications.
func (s *State) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.applications {
		if a.Status == models.AppPending {
			count++
		}
	}
	return count
}

// DonationsForHub returns the donation total for one hub.
func (s *State) DonationsForHub(hubID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, d := range s.donations {
		if d.HubID == hubID {
			total += d.Amount
		}
	}
	return total
}

// RedemptionsForHub returns the redemption count for one hub.
func (s *State) RedemptionsForHub(hubID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, r := range s.redeemLog {
		if r.HubID == hubID {
			count++
		}
	}
	return count
}
