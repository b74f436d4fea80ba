// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appstate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaylew1421/commonkind/models"
)

// persistedState is the subset written to disk between runs: hub
// applications and the admin token. The web app kept the same subset
// in browser local storage.
type persistedState struct {
	Applications []models.HubApplication `json:"applications"`
	AdminToken   string                  `json:"adminToken,omitempty"`
}

// Save writes the persistent subset of the state to path.
func (s *State) Save(path string) error {
	s.mu.Lock()
	snapshot := persistedState{
		Applications: make([]models.HubApplication, len(s.applications)),
		AdminToken:   s.adminToken,
	}
	copy(snapshot.Applications, s.applications)
	s.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("appstate.Save: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("appstate.Save: %w", err)
	}
	return nil
}

// Load restores the persistent subset from path. The file must exist;
// callers that treat a missing file as a fresh start should check for
// it themselves.
func (s *State) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("appstate.Load: %w", err)
	}

	var snapshot persistedState
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("appstate.Load: %w", err)
	}

	s.mu.Lock()
	s.applications = snapshot.Applications
	s.adminToken = snapshot.AdminToken
	s.mu.Unlock()
	return nil
}
