package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/class_fund_app/internal/apperrors"
	"github.com/SscSPs/class_fund_app/internal/core/domain"
	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
	"github.com/SscSPs/class_fund_app/internal/core/services"
	"github.com/SscSPs/class_fund_app/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockBoxRepository is a mock type for the BoxRepositoryFacade interface
type MockBoxRepository struct {
	mock.Mock
}

func (m *MockBoxRepository) Load(ctx context.Context) ([]domain.Box, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Box), args.Error(1)
}

func (m *MockBoxRepository) Save(ctx context.Context, boxes []domain.Box) error {
	args := m.Called(ctx, boxes)
	return args.Error(0)
}

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.BoxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// --- helpers ---

func balance(s string) decimal.NullDecimal {
	return domain.NewBalance(decimal.RequireFromString(s))
}

func boxIDs(boxes []domain.Box) []string {
	ids := make([]string, len(boxes))
	for i, b := range boxes {
		ids[i] = b.ID
	}
	return ids
}

// savedIDs matches a Save call whose collection has exactly these ids in order.
func savedIDs(ids ...string) interface{} {
	return mock.MatchedBy(func(boxes []domain.Box) bool {
		got := boxIDs(boxes)
		if len(got) != len(ids) {
			return false
		}
		for i := range ids {
			if got[i] != ids[i] {
				return false
			}
		}
		return true
	})
}

// --- Test Suite Setup ---

type BoxLedgerServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	mockRepo  *MockBoxRepository
	publisher *MockEventPublisher
	now       time.Time
	service   portssvc.BoxLedgerSvcFacade
}

func (suite *BoxLedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockBoxRepository)
	suite.publisher = new(MockEventPublisher)
	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewBoxLedgerService(suite.mockRepo,
		services.WithEventPublisher(suite.publisher),
		services.WithMetrics(metrics.New()),
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *BoxLedgerServiceTestSuite) initializeWith(boxes ...domain.Box) {
	suite.mockRepo.On("Load", mock.Anything).Return(boxes, nil).Once()
	suite.service.Initialize(suite.ctx)
	suite.Require().True(suite.service.IsLoaded())
}

// --- Initialize ---

func (suite *BoxLedgerServiceTestSuite) TestInitialize_LoadsStoredBoxesInOrder() {
	stored := []domain.Box{
		{ID: "1", Name: "Trip", Balance: balance("10")},
		{ID: "2", Name: "Party"},
	}
	suite.mockRepo.On("Load", suite.ctx).Return(stored, nil).Once()

	suite.False(suite.service.IsLoaded())
	suite.service.Initialize(suite.ctx)

	suite.True(suite.service.IsLoaded())
	all := suite.service.GetAll()
	suite.Equal([]string{"1", "2"}, boxIDs(all))
	suite.True(all[0].Equal(stored[0]))
	suite.False(all[1].Balance.Valid, "absent balance must stay absent")

	status := suite.service.SyncStatus()
	suite.True(status.Loaded)
	suite.False(status.PendingSync)
	suite.NoError(status.LastError)
	suite.Equal(suite.now, status.LastSyncedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BoxLedgerServiceTestSuite) TestInitialize_EmptyStorage() {
	suite.initializeWith()
	suite.Empty(suite.service.GetAll())
	suite.NotNil(suite.service.GetAll())
}

func (suite *BoxLedgerServiceTestSuite) TestInitialize_LoadFailureLeavesEmptyLoadedCollection() {
	loadErr := apperrors.NewStoreError("load", errors.New("corrupt data"))
	suite.mockRepo.On("Load", mock.Anything).Return(nil, loadErr).Once()

	suite.NotPanics(func() { suite.service.Initialize(suite.ctx) })

	suite.True(suite.service.IsLoaded())
	suite.Empty(suite.service.GetAll())
	status := suite.service.SyncStatus()
	suite.ErrorIs(status.LastError, apperrors.ErrStore)
	suite.True(status.Diverged())
}

func (suite *BoxLedgerServiceTestSuite) TestInitialize_ReplacesCollectionAndBumpsGeneration() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip"})
	first := suite.service.Generation()

	suite.initializeWith(domain.Box{ID: "9", Name: "Other"})

	suite.Equal(first+1, suite.service.Generation())
	suite.Equal([]string{"9"}, boxIDs(suite.service.GetAll()))
}

// --- AddBox ---

func (suite *BoxLedgerServiceTestSuite) TestAddBox_BeforeInitialize() {
	err := suite.service.AddBox(suite.ctx, domain.Box{ID: "1", Name: "Trip"})

	suite.ErrorIs(err, apperrors.ErrNotReady)
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_Success() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip", Balance: balance("10")})
	newBox := domain.Box{ID: "2", Name: "Party", Balance: balance("0")}

	suite.mockRepo.On("Save", mock.Anything, savedIDs("1", "2")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, domain.BoxEvent{Type: domain.BoxAdded, Box: newBox, OccurredAt: suite.now}).Return(nil).Once()

	err := suite.service.AddBox(suite.ctx, newBox)

	suite.Require().NoError(err)
	all := suite.service.GetAll()
	suite.Equal([]string{"1", "2"}, boxIDs(all))
	suite.True(all[1].Equal(newBox))
	suite.False(suite.service.SyncStatus().PendingSync)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_ToEmptyCollection() {
	suite.initializeWith()
	newBox := domain.Box{ID: "1", Name: "Trip", Balance: balance("0")}
	suite.mockRepo.On("Save", mock.Anything, []domain.Box{newBox}).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	suite.Require().NoError(suite.service.AddBox(suite.ctx, newBox))
	suite.Equal([]string{"1"}, boxIDs(suite.service.GetAll()))
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_SaveFailureKeepsBoxInMemory() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip"})
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1", "2")).Return(errors.New("disk full")).Once()

	err := suite.service.AddBox(suite.ctx, domain.Box{ID: "2", Name: "Party"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStore)
	var storeErr *apperrors.StoreError
	suite.Require().ErrorAs(err, &storeErr)
	suite.Equal("save", storeErr.Op)

	suite.Equal([]string{"1", "2"}, boxIDs(suite.service.GetAll()))
	status := suite.service.SyncStatus()
	suite.True(status.Diverged())
	suite.False(status.PendingSync)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_Duplicate() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip"})

	err := suite.service.AddBox(suite.ctx, domain.Box{ID: "1", Name: "Again"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Len(suite.service.GetAll(), 1)
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_Invalid() {
	suite.initializeWith()

	err := suite.service.AddBox(suite.ctx, domain.Box{ID: "1"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.service.GetAll())
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_BalanceOutOfRange() {
	suite.initializeWith()

	err := suite.service.AddBox(suite.ctx, domain.Box{ID: "9", Name: "x", Balance: balance("1e20000000")})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.service.GetAll())
	suite.False(suite.service.SyncStatus().PendingSync)
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *BoxLedgerServiceTestSuite) TestEditBox_BalanceOutOfRange() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip", Balance: balance("10")})

	replaced, err := suite.service.EditBox(suite.ctx, domain.Box{ID: "1", Name: "Trip", Balance: balance("1e-20000000")})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.False(replaced)
	box, err := suite.service.GetBox("1")
	suite.Require().NoError(err)
	suite.Equal("10", box.Balance.Decimal.String())
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_PublishHasDeadline() {
	suite.initializeWith()
	withDeadline := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1")).Return(nil).Once()
	suite.publisher.On("Publish", withDeadline, mock.Anything).Return(nil).Once()

	suite.Require().NoError(suite.service.AddBox(suite.ctx, domain.Box{ID: "1", Name: "Trip"}))
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_SaveIgnoresCallerCancellation() {
	suite.initializeWith()
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	notCancelled := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	suite.mockRepo.On("Save", notCancelled, savedIDs("1")).Return(nil).Once()
	suite.publisher.On("Publish", notCancelled, mock.Anything).Return(nil).Once()

	suite.Require().NoError(suite.service.AddBox(ctx, domain.Box{ID: "1", Name: "Trip"}))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_PublishFailureIsNotAnError() {
	suite.initializeWith()
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	suite.NoError(suite.service.AddBox(suite.ctx, domain.Box{ID: "1", Name: "Trip"}))
	suite.False(suite.service.SyncStatus().Diverged())
}

func (suite *BoxLedgerServiceTestSuite) TestAddBox_OverlappingSaves() {
	suite.initializeWith()

	started := make(chan struct{})
	release := make(chan struct{})
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1")).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1", "2")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()

	done := make(chan error, 1)
	go func() {
		done <- suite.service.AddBox(suite.ctx, domain.Box{ID: "1", Name: "Trip"})
	}()
	<-started

	suite.True(suite.service.SyncStatus().PendingSync)
	suite.Require().NoError(suite.service.AddBox(suite.ctx, domain.Box{ID: "2", Name: "Party"}))
	suite.True(suite.service.SyncStatus().PendingSync, "first save still in flight")

	close(release)
	suite.Require().NoError(<-done)

	suite.Equal([]string{"1", "2"}, boxIDs(suite.service.GetAll()))
	suite.False(suite.service.SyncStatus().PendingSync)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- EditBox ---

func (suite *BoxLedgerServiceTestSuite) TestEditBox_ReplacesInPlace() {
	suite.initializeWith(
		domain.Box{ID: "1", Name: "Trip", Balance: balance("10")},
		domain.Box{ID: "2", Name: "Party", Balance: balance("5")},
		domain.Box{ID: "3", Name: "Books"},
	)
	updated := domain.Box{ID: "2", Name: "Party", Balance: balance("7.5")}

	suite.mockRepo.On("Save", mock.Anything, savedIDs("1", "2", "3")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, domain.BoxEvent{Type: domain.BoxEdited, Box: updated, OccurredAt: suite.now}).Return(nil).Once()

	replaced, err := suite.service.EditBox(suite.ctx, updated)

	suite.Require().NoError(err)
	suite.True(replaced)
	all := suite.service.GetAll()
	suite.Equal([]string{"1", "2", "3"}, boxIDs(all))
	suite.True(all[1].Equal(updated))
	suite.Equal("7.50", all[1].Balance.Decimal.StringFixed(2))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *BoxLedgerServiceTestSuite) TestEditBox_ClearBalance() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip", Balance: balance("10")})
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	replaced, err := suite.service.EditBox(suite.ctx, domain.Box{ID: "1", Name: "Trip"})

	suite.Require().NoError(err)
	suite.True(replaced)
	suite.False(suite.service.GetAll()[0].Balance.Valid)
}

func (suite *BoxLedgerServiceTestSuite) TestEditBox_UnknownIDLeavesCollectionUnchanged() {
	existing := domain.Box{ID: "1", Name: "Trip", Balance: balance("10")}
	suite.initializeWith(existing)
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1")).Return(nil).Once()

	replaced, err := suite.service.EditBox(suite.ctx, domain.Box{ID: "42", Name: "Ghost"})

	suite.NoError(err)
	suite.False(replaced)
	all := suite.service.GetAll()
	suite.Len(all, 1)
	suite.True(all[0].Equal(existing))
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BoxLedgerServiceTestSuite) TestEditBox_SaveFailureKeepsEditInMemory() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip", Balance: balance("10")})
	suite.mockRepo.On("Save", mock.Anything, savedIDs("1")).Return(apperrors.NewStoreError("save", errors.New("quota exceeded"))).Once()

	replaced, err := suite.service.EditBox(suite.ctx, domain.Box{ID: "1", Name: "Trip", Balance: balance("20")})

	suite.True(replaced)
	suite.ErrorIs(err, apperrors.ErrStore)
	suite.Equal("20.00", suite.service.GetAll()[0].Balance.Decimal.StringFixed(2))
	suite.True(suite.service.SyncStatus().Diverged())
}

func (suite *BoxLedgerServiceTestSuite) TestEditBox_SuccessClearsPreviousError() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip"})
	suite.mockRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("offline")).Once()
	suite.mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := suite.service.EditBox(suite.ctx, domain.Box{ID: "1", Name: "Trip 2"})
	suite.Require().Error(err)
	suite.True(suite.service.SyncStatus().Diverged())

	_, err = suite.service.EditBox(suite.ctx, domain.Box{ID: "1", Name: "Trip 3"})
	suite.Require().NoError(err)
	suite.False(suite.service.SyncStatus().Diverged())
}

func (suite *BoxLedgerServiceTestSuite) TestEditBox_BeforeInitialize() {
	replaced, err := suite.service.EditBox(suite.ctx, domain.Box{ID: "1", Name: "Trip"})

	suite.False(replaced)
	suite.ErrorIs(err, apperrors.ErrNotReady)
}

// --- Reads ---

func (suite *BoxLedgerServiceTestSuite) TestGetAll_ReturnsCopy() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip"})

	all := suite.service.GetAll()
	all[0].Name = "mutated"

	suite.Equal("Trip", suite.service.GetAll()[0].Name)
}

func (suite *BoxLedgerServiceTestSuite) TestGetBox() {
	suite.initializeWith(domain.Box{ID: "1", Name: "Trip"})

	box, err := suite.service.GetBox("1")
	suite.Require().NoError(err)
	suite.Equal("Trip", box.Name)

	_, err = suite.service.GetBox("missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestBoxLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BoxLedgerServiceTestSuite))
}
