package services

import (
	"sync"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
	"github.com/SscSPs/class_fund_app/internal/utils"
	"github.com/shopspring/decimal"
)

// selection is the box a session picked, tagged with the ledger generation it was picked in.
type selection struct {
	box        domain.Box
	generation uint64
}

// selectionService implements the SelectionSvc interface
type selectionService struct {
	ledger       portssvc.BoxLedgerSvcFacade
	currencyCode string

	mu       sync.Mutex
	sessions map[string]selection
}

// NewSelectionService creates the view controller for the given ledger.
// currencyCode is used by DisplayAmount (e.g. "BRL").
func NewSelectionService(ledger portssvc.BoxLedgerSvcFacade, currencyCode string) portssvc.SelectionSvc {
	return &selectionService{
		ledger:       ledger,
		currencyCode: currencyCode,
		sessions:     make(map[string]selection),
	}
}

var _ portssvc.SelectionSvc = (*selectionService)(nil)

func (s *selectionService) Select(sessionID string, box *domain.Box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if box == nil {
		delete(s.sessions, sessionID)
		return
	}
	s.sessions[sessionID] = selection{box: *box, generation: s.ledger.Generation()}
}

// Selected returns the ledger's current version of the selected box when the
// ledger still holds it. A selection made before the last reload reads as none.
func (s *selectionService) Selected(sessionID string) (domain.Box, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.sessions[sessionID]
	if !ok {
		return domain.Box{}, false
	}
	if sel.generation != s.ledger.Generation() {
		delete(s.sessions, sessionID)
		return domain.Box{}, false
	}
	if current, err := s.ledger.GetBox(sel.box.ID); err == nil {
		return *current, true
	}
	return sel.box, true
}

func (s *selectionService) State(sessionID string) domain.SelectionState {
	if _, ok := s.Selected(sessionID); ok {
		return domain.HasSelection
	}
	return domain.NoSelection
}

func (s *selectionService) FormatAmount(amount decimal.NullDecimal) string {
	return utils.FormatAmount(amount)
}

func (s *selectionService) DisplayAmount(amount decimal.NullDecimal) string {
	return utils.DisplayAmount(amount, s.currencyCode)
}

func (s *selectionService) RequestEdit(box domain.Box) portssvc.EditHandle {
	return portssvc.EditHandle{
		Box:  box,
		Edit: s.ledger.EditBox,
	}
}
