// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appstate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaylew1421/commonkind/models"
)

// FlagFraud records an open fraud flag against a hub and logs it.
func (s *State) FlagFraud(hub models.Hub, title, details string) models.FraudFlag {
	flag := models.FraudFlag{
		ID:        "FRD-" + uuid.NewString(),
		HubID:     hub.ID,
		HubName:   hub.Name,
		Title:     title,
		Details:   details,
		Status:    models.FraudOpen,
		CreatedAt: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.fraudFlags = append([]models.FraudFlag{flag}, s.fraudFlags...)
	s.logActivityLocked(models.EventFraudFlag, fmt.Sprintf("Fraud flag on %s: %s.", hub.Name, title))
	s.mu.Unlock()
	return flag
}

// ResolveFraud marks a fraud flag resolved. Returns false when the id
// is unknown or the flag is already resolved.
func (s *State) ResolveFraud(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fraudFlags {
		if s.fraudFlags[i].ID != id || s.fraudFlags[i].Status != models.FraudOpen {
			continue
		}
		s.fraudFlags[i].Status = models.FraudResolved
		s.logActivityLocked(models.EventFraudResolved, fmt.Sprintf("Fraud flag resolved for %s.", s.fraudFlags[i].HubName))
		return true
	}
	return false
}

// FraudFlags returns a copy of the fraud flag list, newest first.
func (s *State) FraudFlags() []models.FraudFlag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FraudFlag, len(s.fraudFlags))
	copy(out, s.fraudFlags)
	return out
}

// OpenFraudCount returns the number of unresolved fraud flags.
func (s *State) OpenFraudCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, f := range s.fraudFlags {
		if f.Status == models.FraudOpen {
			count++
		}
	}
	return count
}
