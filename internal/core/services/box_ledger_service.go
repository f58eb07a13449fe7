package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/class_fund_app/internal/apperrors"
	"github.com/SscSPs/class_fund_app/internal/core/domain"
	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
	"github.com/SscSPs/class_fund_app/internal/platform/metrics"
)

// publishTimeout bounds how long a mutation waits on the event broker after its save.
const publishTimeout = 5 * time.Second

// boxLedgerService implements the BoxLedgerSvcFacade interface.
// It owns the authoritative in-memory collection and persists it after every mutation.
type boxLedgerService struct {
	BaseService
	boxRepo   portsrepo.BoxRepositoryFacade
	publisher portssvc.EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time

	mu         sync.RWMutex
	boxes      []domain.Box
	loaded     bool
	generation uint64
	pending    int
	lastErr    error
	lastSynced time.Time
}

// LedgerOption is a functional option for configuring the box ledger service
type LedgerOption func(*boxLedgerService)

// WithEventPublisher publishes a BoxEvent after every persisted mutation
func WithEventPublisher(publisher portssvc.EventPublisher) LedgerOption {
	return func(s *boxLedgerService) {
		s.publisher = publisher
	}
}

// WithMetrics records store latency and collection size
func WithMetrics(m *metrics.Metrics) LedgerOption {
	return func(s *boxLedgerService) {
		s.metrics = m
	}
}

// WithLogger sets the logger used outside of request scope
func WithLogger(logger *slog.Logger) LedgerOption {
	return func(s *boxLedgerService) {
		s.Logger = logger
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) LedgerOption {
	return func(s *boxLedgerService) {
		s.now = now
	}
}

// NewBoxLedgerService creates a new box ledger over the given repository.
// The ledger starts unloaded; call Initialize before mutating it.
func NewBoxLedgerService(repo portsrepo.BoxRepositoryFacade, options ...LedgerOption) portssvc.BoxLedgerSvcFacade {
	svc := &boxLedgerService{
		boxRepo: repo,
		now:     time.Now,
		boxes:   []domain.Box{},
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure boxLedgerService implements the BoxLedgerSvcFacade interface
var _ portssvc.BoxLedgerSvcFacade = (*boxLedgerService)(nil)

func (s *boxLedgerService) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.loaded = false
	s.boxes = []domain.Box{}
	s.generation++
	s.mu.Unlock()

	start := time.Now()
	boxes, err := s.boxRepo.Load(ctx)
	s.metrics.ObserveStoreOperation("load", err, time.Since(start))

	s.mu.Lock()
	if err != nil {
		s.lastErr = err
	} else {
		s.boxes = domain.CloneBoxes(boxes)
		s.lastErr = nil
		s.lastSynced = s.now()
	}
	s.loaded = true
	count := len(s.boxes)
	s.mu.Unlock()

	s.metrics.SetBoxCount(count)
	if err != nil {
		s.LogError(ctx, err, "Failed to load boxes, continuing with an empty collection")
		return
	}
	s.LogInfo(ctx, "Boxes loaded", slog.Int("count", count))
}

func (s *boxLedgerService) AddBox(ctx context.Context, box domain.Box) error {
	if err := box.Validate(); err != nil {
		s.LogDebug(ctx, "Rejected invalid box", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return apperrors.ErrNotReady
	}
	if s.indexOf(box.ID) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: box %s", apperrors.ErrDuplicate, box.ID)
	}
	s.boxes = append(s.boxes, box)
	snapshot := domain.CloneBoxes(s.boxes)
	s.pending++
	s.mu.Unlock()

	if err := s.persist(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Box added in memory but not persisted",
			slog.String("box_id", box.ID))
		return err
	}

	s.LogInfo(ctx, "Box added", slog.String("box_id", box.ID))
	s.publish(ctx, domain.BoxAdded, box)
	return nil
}

func (s *boxLedgerService) EditBox(ctx context.Context, box domain.Box) (bool, error) {
	if err := box.Validate(); err != nil {
		s.LogDebug(ctx, "Rejected invalid box", slog.String("error", err.Error()))
		return false, err
	}

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false, apperrors.ErrNotReady
	}
	i := s.indexOf(box.ID)
	replaced := i >= 0
	if replaced {
		s.boxes[i] = box
	}
	snapshot := domain.CloneBoxes(s.boxes)
	s.pending++
	s.mu.Unlock()

	if !replaced {
		s.LogDebug(ctx, "No box with this id, collection unchanged", slog.String("box_id", box.ID))
	}

	if err := s.persist(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Box edited in memory but not persisted",
			slog.String("box_id", box.ID))
		return replaced, err
	}

	if replaced {
		s.LogInfo(ctx, "Box edited", slog.String("box_id", box.ID))
		s.publish(ctx, domain.BoxEdited, box)
	}
	return replaced, nil
}

func (s *boxLedgerService) GetAll() []domain.Box {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneBoxes(s.boxes)
}

func (s *boxLedgerService) GetBox(boxID string) (*domain.Box, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(boxID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	box := s.boxes[i]
	return &box, nil
}

func (s *boxLedgerService) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *boxLedgerService) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *boxLedgerService) SyncStatus() domain.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SyncStatus{
		Loaded:       s.loaded,
		PendingSync:  s.pending > 0,
		LastError:    s.lastErr,
		LastSyncedAt: s.lastSynced,
	}
}

// indexOf must be called with mu held.
func (s *boxLedgerService) indexOf(boxID string) int {
	for i := range s.boxes {
		if s.boxes[i].ID == boxID {
			return i
		}
	}
	return -1
}

// persist saves snapshot and records the outcome. An issued save is not
// cancelled by the caller's context. Returned errors always match apperrors.ErrStore.
func (s *boxLedgerService) persist(ctx context.Context, snapshot []domain.Box) error {
	s.metrics.SaveStarted()
	start := time.Now()
	err := s.boxRepo.Save(context.WithoutCancel(ctx), snapshot)
	s.metrics.ObserveStoreOperation("save", err, time.Since(start))
	s.metrics.SaveFinished()

	s.mu.Lock()
	s.pending--
	if err != nil {
		s.lastErr = err
	} else {
		s.lastErr = nil
		s.lastSynced = s.now()
	}
	count := len(s.boxes)
	s.mu.Unlock()
	s.metrics.SetBoxCount(count)

	if err != nil && !errors.Is(err, apperrors.ErrStore) {
		err = apperrors.NewStoreError("save", err)
	}
	return err
}

func (s *boxLedgerService) publish(ctx context.Context, eventType domain.BoxEventType, box domain.Box) {
	if s.publisher == nil {
		return
	}
	event := domain.BoxEvent{Type: eventType, Box: box, OccurredAt: s.now()}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, event); err != nil {
		s.LogWarn(ctx, "Failed to publish box event",
			slog.String("event_type", string(eventType)),
			slog.String("box_id", box.ID),
			slog.String("error", err.Error()))
	}
}
