package settings

import (
	"fmt"
	"log"
	"sync"

	"stockwatch/internal/config"
)

// State is the position of the settings-change workflow.
type State string

const (
	StateIdle                State = "IDLE"
	StateValidating          State = "VALIDATING"
	StateRejected            State = "REJECTED"
	StatePendingConfirmation State = "PENDING_CONFIRMATION"
	StateApplied             State = "APPLIED"
	StateReverted            State = "REVERTED"
)

// Manager owns the confirmed configuration and mediates changes
// through an explicit validate/confirm workflow. A rejected or
// reverted proposal always restores the last-applied values, never
// factory defaults. The pipeline and scheduler read only confirmed
// config, never pending edits.
type Manager struct {
	mu        sync.Mutex
	confirmed *config.Config
	pending   *config.Config
	state     State
}

// NewManager seeds the manager with an already-validated config.
func NewManager(confirmed *config.Config) *Manager {
	return &Manager{confirmed: confirmed, state: StateIdle}
}

// Confirmed returns the last-applied configuration.
func (m *Manager) Confirmed() *config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmed
}

// State returns the current workflow state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Propose validates a candidate config. On success the candidate is
// held pending confirmation; on failure the proposal is rejected and
// the confirmed values remain in force.
func (m *Manager) Propose(candidate *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateValidating
	if err := candidate.Validate(); err != nil {
		m.state = StateRejected
		m.pending = nil
		log.Printf("[WARN] settings proposal rejected: %v", err)
		return err
	}

	m.pending = candidate
	m.state = StatePendingConfirmation
	return nil
}

// Apply promotes the pending config to confirmed.
func (m *Manager) Apply() (*config.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StatePendingConfirmation || m.pending == nil {
		return nil, fmt.Errorf("no pending settings to apply (state %s)", m.state)
	}
	m.confirmed = m.pending
	m.pending = nil
	m.state = StateApplied
	log.Println("[INFO] settings applied")
	return m.confirmed, nil
}

// Revert discards the pending config, keeping the confirmed values.
func (m *Manager) Revert() *config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = nil
	m.state = StateReverted
	log.Println("[INFO] settings change reverted to last-applied values")
	return m.confirmed
}
