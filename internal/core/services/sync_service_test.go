package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledback/ledback_backend/internal/apperrors"
	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/ledback/ledback_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockSyncRepository is a mock type for the SyncRepository interface
type MockSyncRepository struct {
	mock.Mock
}

func (m *MockSyncRepository) PullChanges(ctx context.Context, owner domain.OwnerID, since time.Time) (*domain.SyncDelta, error) {
	args := m.Called(ctx, owner, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncDelta), args.Error(1)
}

func (m *MockSyncRepository) ApplyPushBatch(ctx context.Context, owner domain.OwnerID, batch domain.PushBatch, resolve domain.ConflictResolver, now time.Time) error {
	args := m.Called(ctx, owner, batch, resolve, now)
	return args.Error(0)
}

type SyncServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSyncRepository
	service  *services.SyncService
	owner    domain.OwnerID
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSyncRepository)
	suite.service = services.NewSyncService(suite.mockRepo)
	suite.owner = domain.OwnerID("user@example.com")
}

func (suite *SyncServiceTestSuite) TestPull_SetsCursorAtStart() {
	ctx := context.Background()
	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("PullChanges", ctx, suite.owner, since).Return(&domain.SyncDelta{}, nil).Once()

	before := time.Now().UTC()
	delta, err := suite.service.Pull(ctx, suite.owner, since)
	after := time.Now().UTC()

	suite.Require().NoError(err)
	suite.False(delta.Cursor.Before(before))
	suite.False(delta.Cursor.After(after))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_EmptyBatchSkipsRepository() {
	ctx := context.Background()

	serverTime, err := suite.service.Push(ctx, suite.owner, domain.PushBatch{})

	suite.NoError(err)
	suite.False(serverTime.IsZero())
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyPushBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestPush_ForcesOwnershipAndDefaultsWatermarks() {
	ctx := context.Background()
	batch := domain.PushBatch{
		Ledgers: []domain.Ledger{{
			LedgerID: "l1",
			Name:     "Petty Cash",
			Owner:    domain.OwnerID("intruder@example.com"),
		}},
	}

	var applied domain.PushBatch
	suite.mockRepo.On("ApplyPushBatch", ctx, suite.owner, mock.AnythingOfType("domain.PushBatch"), mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			applied = args.Get(2).(domain.PushBatch)
		}).
		Return(nil).Once()

	serverTime, err := suite.service.Push(ctx, suite.owner, batch)

	suite.Require().NoError(err)
	suite.False(serverTime.IsZero())
	suite.Require().Len(applied.Ledgers, 1)
	suite.Equal(suite.owner, applied.Ledgers[0].Owner)
	suite.False(applied.Ledgers[0].CreatedAt.IsZero())
	suite.False(applied.Ledgers[0].UpdatedAt.IsZero())
}

func (suite *SyncServiceTestSuite) TestPush_DefaultsLedgerNatureAndGroup() {
	ctx := context.Background()
	batch := domain.PushBatch{
		Ledgers: []domain.Ledger{{LedgerID: "l1", Name: "Petty Cash"}},
	}

	var applied domain.PushBatch
	suite.mockRepo.On("ApplyPushBatch", ctx, suite.owner, mock.AnythingOfType("domain.PushBatch"), mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			applied = args.Get(2).(domain.PushBatch)
		}).
		Return(nil).Once()

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.Require().NoError(err)
	suite.Require().Len(applied.Ledgers, 1)
	suite.Equal(domain.Asset, applied.Ledgers[0].Nature)
	suite.Equal("Assets", applied.Ledgers[0].GroupName)
}

func (suite *SyncServiceTestSuite) TestPush_DefaultsNilEntryTags() {
	ctx := context.Background()
	batch := domain.PushBatch{
		Entries: []domain.Entry{{
			EntryID:     "e1",
			EntryDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			VoucherType: domain.Journal,
		}},
	}

	var applied domain.PushBatch
	suite.mockRepo.On("ApplyPushBatch", ctx, suite.owner, mock.AnythingOfType("domain.PushBatch"), mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			applied = args.Get(2).(domain.PushBatch)
		}).
		Return(nil).Once()

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.Require().NoError(err)
	suite.Require().Len(applied.Entries, 1)
	suite.NotNil(applied.Entries[0].Tags)
	suite.Empty(applied.Entries[0].Tags)
}

func (suite *SyncServiceTestSuite) TestPush_KeepsClientWatermarks() {
	ctx := context.Background()
	clientTime := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	batch := domain.PushBatch{
		Ledgers: []domain.Ledger{{
			LedgerID:   "l1",
			Name:       "Petty Cash",
			SyncFields: domain.SyncFields{CreatedAt: clientTime, UpdatedAt: clientTime},
		}},
	}

	var applied domain.PushBatch
	suite.mockRepo.On("ApplyPushBatch", ctx, suite.owner, mock.AnythingOfType("domain.PushBatch"), mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			applied = args.Get(2).(domain.PushBatch)
		}).
		Return(nil).Once()

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.Require().NoError(err)
	suite.Equal(clientTime, applied.Ledgers[0].UpdatedAt)
}

func (suite *SyncServiceTestSuite) TestPush_LedgerMissingName() {
	ctx := context.Background()
	batch := domain.PushBatch{Ledgers: []domain.Ledger{{LedgerID: "l1"}}}

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyPushBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestPush_EntryMissingRequiredFields() {
	ctx := context.Background()
	batch := domain.PushBatch{Entries: []domain.Entry{{EntryID: "e1", VoucherType: domain.Journal}}}

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SyncServiceTestSuite) TestPush_EntryInvalidVoucherType() {
	ctx := context.Background()
	batch := domain.PushBatch{Entries: []domain.Entry{{
		EntryID:     "e1",
		EntryDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		VoucherType: domain.VoucherType("Invoice"),
	}}}

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SyncServiceTestSuite) TestPush_LineNonPositiveAmount() {
	ctx := context.Background()
	batch := domain.PushBatch{EntryLines: []domain.EntryLine{{
		LineID:         "li1",
		EntryID:        "e1",
		DebitLedgerID:  "rent",
		CreditLedgerID: "cash",
		Amount:         decimal.Zero,
	}}}

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SyncServiceTestSuite) TestPush_LineSameDebitAndCreditLedger() {
	ctx := context.Background()
	batch := domain.PushBatch{EntryLines: []domain.EntryLine{{
		LineID:         "li1",
		EntryID:        "e1",
		DebitLedgerID:  "cash",
		CreditLedgerID: "cash",
		Amount:         decimal.RequireFromString("10.00"),
	}}}

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyPushBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestPush_UnsupportedDeleteTable() {
	ctx := context.Background()
	batch := domain.PushBatch{Deletes: []domain.DeleteOp{{Table: "users", ID: "u1"}}}

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SyncServiceTestSuite) TestPush_ForbiddenPropagates() {
	ctx := context.Background()
	batch := domain.PushBatch{Deletes: []domain.DeleteOp{{Table: "entry_lines", ID: "li1"}}}

	suite.mockRepo.On("ApplyPushBatch", ctx, suite.owner, mock.AnythingOfType("domain.PushBatch"), mock.Anything, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.Push(ctx, suite.owner, batch)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *SyncServiceTestSuite) TestPush_RetryWithSameBatchIsAccepted() {
	ctx := context.Background()
	batch := domain.PushBatch{
		Ledgers: []domain.Ledger{{LedgerID: "l1", Name: "Petty Cash"}},
	}

	suite.mockRepo.On("ApplyPushBatch", ctx, suite.owner, mock.AnythingOfType("domain.PushBatch"), mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil).Twice()

	_, err := suite.service.Push(ctx, suite.owner, batch)
	suite.NoError(err)
	_, err = suite.service.Push(ctx, suite.owner, batch)
	suite.NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
