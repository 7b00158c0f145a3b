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

// MockEntryRepository is a mock type for the EntryRepositoryFacade interface
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string, owner domain.OwnerID) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, owner domain.OwnerID) ([]domain.Entry, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListTransactions(ctx context.Context, owner domain.OwnerID) ([]domain.Transaction, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockEntryRepository) SaveEntryWithLines(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) SoftDeleteEntry(ctx context.Context, entryID string, owner domain.OwnerID, now time.Time) error {
	args := m.Called(ctx, entryID, owner, now)
	return args.Error(0)
}

type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo  *MockEntryRepository
	mockLedgerRepo *MockLedgerRepository
	service        *services.EntryService
	owner          domain.OwnerID
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewEntryService(suite.mockEntryRepo, suite.mockLedgerRepo)
	suite.owner = domain.OwnerID("user@example.com")
}

func (suite *EntryServiceTestSuite) validEntry() (domain.Entry, []domain.EntryLine) {
	entry := domain.Entry{
		EntryDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		VoucherType: domain.Payment,
		Narration:   "office rent",
	}
	lines := []domain.EntryLine{{
		DebitLedgerID:  "rent",
		CreditLedgerID: "cash",
		Amount:         decimal.RequireFromString("1500.00"),
	}}
	return entry, lines
}

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	entry, lines := suite.validEntry()

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, "rent", suite.owner).Return(&domain.Ledger{LedgerID: "rent"}, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByID", ctx, "cash", suite.owner).Return(&domain.Ledger{LedgerID: "cash"}, nil).Once()
	suite.mockEntryRepo.On("SaveEntryWithLines", ctx, mock.AnythingOfType("domain.Entry"), mock.AnythingOfType("[]domain.EntryLine")).Return(nil).Once()

	created, createdLines, err := suite.service.CreateEntry(ctx, suite.owner, entry, lines)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.EntryID)
	suite.Equal(suite.owner, created.Owner)
	suite.Require().Len(createdLines, 1)
	suite.Equal(created.EntryID, createdLines[0].EntryID)
	suite.NotEmpty(createdLines[0].LineID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_DefaultsNilTags() {
	ctx := context.Background()
	entry, lines := suite.validEntry()

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, "rent", suite.owner).Return(&domain.Ledger{LedgerID: "rent"}, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByID", ctx, "cash", suite.owner).Return(&domain.Ledger{LedgerID: "cash"}, nil).Once()

	var saved domain.Entry
	suite.mockEntryRepo.On("SaveEntryWithLines", ctx, mock.AnythingOfType("domain.Entry"), mock.AnythingOfType("[]domain.EntryLine")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Entry)
		}).
		Return(nil).Once()

	created, _, err := suite.service.CreateEntry(ctx, suite.owner, entry, lines)

	suite.Require().NoError(err)
	suite.NotNil(created.Tags)
	suite.Empty(created.Tags)
	suite.NotNil(saved.Tags)
	suite.Empty(saved.Tags)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NoLines() {
	ctx := context.Background()
	entry, _ := suite.validEntry()

	_, _, err := suite.service.CreateEntry(ctx, suite.owner, entry, nil)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntryWithLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_SameDebitAndCreditLedger() {
	ctx := context.Background()
	entry, lines := suite.validEntry()
	lines[0].CreditLedgerID = lines[0].DebitLedgerID

	_, _, err := suite.service.CreateEntry(ctx, suite.owner, entry, lines)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()
	entry, lines := suite.validEntry()
	lines[0].Amount = decimal.Zero

	_, _, err := suite.service.CreateEntry(ctx, suite.owner, entry, lines)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_UnknownLedger() {
	ctx := context.Background()
	entry, lines := suite.validEntry()

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, "rent", suite.owner).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.CreateEntry(ctx, suite.owner, entry, lines)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntryWithLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_InvalidVoucherType() {
	ctx := context.Background()
	entry, lines := suite.validEntry()
	entry.VoucherType = domain.VoucherType("Invoice")

	_, _, err := suite.service.CreateEntry(ctx, suite.owner, entry, lines)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestGetEntryWithLines() {
	ctx := context.Background()
	entry := &domain.Entry{EntryID: "e1", Owner: suite.owner}
	lines := []domain.EntryLine{{LineID: "l1", EntryID: "e1"}}

	suite.mockEntryRepo.On("FindEntryByID", ctx, "e1", suite.owner).Return(entry, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, "e1").Return(lines, nil).Once()

	gotEntry, gotLines, err := suite.service.GetEntryWithLines(ctx, suite.owner, "e1")

	suite.Require().NoError(err)
	suite.Equal(entry, gotEntry)
	suite.Equal(lines, gotLines)
}

func (suite *EntryServiceTestSuite) TestGetEntryWithLines_NotFound() {
	ctx := context.Background()

	suite.mockEntryRepo.On("FindEntryByID", ctx, "missing", suite.owner).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetEntryWithLines(ctx, suite.owner, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry() {
	ctx := context.Background()

	suite.mockEntryRepo.On("SoftDeleteEntry", ctx, "e1", suite.owner, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.NoError(suite.service.DeleteEntry(ctx, suite.owner, "e1"))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
