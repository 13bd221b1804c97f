package settings

import (
	"path/filepath"
	"testing"

	"stockwatch/internal/config"
	"stockwatch/internal/model"
)

func confirmedConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Symbol:      "005930",
		NotifyTimes: []string{"09:00"},
		Periods:     []int{20},
		DataFile:    filepath.Join(t.TempDir(), "stock_data.csv"),
		Alerts:      []model.AlertRule{{Period: 20, MaxDropPct: 5, MinRisePct: 5}},
	}
}

func TestPropose_InvalidRejected(t *testing.T) {
	confirmed := confirmedConfig(t)
	m := NewManager(confirmed)

	bad := confirmedConfig(t)
	bad.Symbol = "bad"
	if err := m.Propose(bad); err == nil {
		t.Fatal("expected rejection for invalid symbol")
	}
	if m.State() != StateRejected {
		t.Errorf("expected REJECTED, got %s", m.State())
	}
	if m.Confirmed().Symbol != "005930" {
		t.Errorf("rejection must keep confirmed values, got symbol %q", m.Confirmed().Symbol)
	}
}

func TestPropose_ValidThenApply(t *testing.T) {
	m := NewManager(confirmedConfig(t))

	next := confirmedConfig(t)
	next.Symbol = "000660"
	if err := m.Propose(next); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if m.State() != StatePendingConfirmation {
		t.Fatalf("expected PENDING_CONFIRMATION, got %s", m.State())
	}
	// Confirmed is untouched until Apply.
	if m.Confirmed().Symbol != "005930" {
		t.Errorf("pending proposal must not leak into confirmed config")
	}

	applied, err := m.Apply()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied.Symbol != "000660" || m.Confirmed().Symbol != "000660" {
		t.Error("apply must promote the pending config")
	}
	if m.State() != StateApplied {
		t.Errorf("expected APPLIED, got %s", m.State())
	}
}

func TestRevert_KeepsConfirmed(t *testing.T) {
	m := NewManager(confirmedConfig(t))

	next := confirmedConfig(t)
	next.Symbol = "000660"
	if err := m.Propose(next); err != nil {
		t.Fatal(err)
	}

	got := m.Revert()
	if got.Symbol != "005930" {
		t.Errorf("revert must restore last-applied values, got %q", got.Symbol)
	}
	if m.State() != StateReverted {
		t.Errorf("expected REVERTED, got %s", m.State())
	}
	if _, err := m.Apply(); err == nil {
		t.Error("apply after revert must fail, nothing is pending")
	}
}

func TestApply_WithoutProposal(t *testing.T) {
	m := NewManager(confirmedConfig(t))
	if _, err := m.Apply(); err == nil {
		t.Fatal("expected error applying with no pending settings")
	}
}
