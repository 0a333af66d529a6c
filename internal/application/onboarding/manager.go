package onboarding

import (
	"context"
	"sync"

	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

// Manager keeps one live Wizard per company, resuming from a persisted draft
// when a session is first requested after a restart or device change.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Wizard

	drafts *DraftStore
	exec   Executors
	events EventPublisher
	log    *logger.Logger
}

// NewManager builds the session manager.
func NewManager(drafts *DraftStore, exec Executors, events EventPublisher, log *logger.Logger) *Manager {
	return &Manager{
		sessions: map[string]*Wizard{},
		drafts:   drafts,
		exec:     exec,
		events:   events,
		log:      log,
	}
}

// Get returns the company's wizard, resuming from the latest draft snapshot
// if one exists, else starting fresh at the store stage.
func (m *Manager) Get(ctx context.Context, companyID, userID string) (*Wizard, error) {
	m.mu.Lock()
	if w, ok := m.sessions[companyID]; ok {
		m.mu.Unlock()
		return w, nil
	}
	m.mu.Unlock()

	// Load outside the lock: it may hit the database.
	snap, err := m.drafts.Load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.sessions[companyID]; ok {
		return w, nil
	}
	var w *Wizard
	if snap != nil {
		w = NewWizardFromSnapshot(companyID, userID, *snap, m.drafts, m.exec, m.events, m.log)
		m.log.Info().Str("company_id", companyID).Str("stage", string(snap.Step)).Msg("onboarding session resumed from draft")
	} else {
		w = NewWizard(companyID, userID, m.drafts, m.exec, m.events, m.log)
	}
	m.sessions[companyID] = w
	return w, nil
}

// Reset drops the live session and its local draft, restarting onboarding
// from the store stage. Needed after a configuration error.
func (m *Manager) Reset(companyID string) error {
	m.mu.Lock()
	delete(m.sessions, companyID)
	m.mu.Unlock()
	return m.drafts.Clear(companyID)
}
