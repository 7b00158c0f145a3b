package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledback/ledback_backend/internal/apperrors"
	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/ledback/ledback_backend/internal/core/services"
	"github.com/ledback/ledback_backend/internal/data"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string, owner domain.OwnerID) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindGlobalLedgerByName(ctx context.Context, name string) (*domain.Ledger, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgers(ctx context.Context, owner domain.OwnerID) ([]domain.Ledger, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindMovementsByLedger(ctx context.Context, ledgerID string, owner domain.OwnerID, from, to *time.Time) ([]domain.Movement, error) {
	args := m.Called(ctx, ledgerID, owner, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockLedgerRepository) CountLinesReferencingLedger(ctx context.Context, ledgerID string) (int64, error) {
	args := m.Called(ctx, ledgerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) SoftDeleteLedger(ctx context.Context, ledgerID string, owner domain.OwnerID, now time.Time) error {
	args := m.Called(ctx, ledgerID, owner, now)
	return args.Error(0)
}

func (m *MockLedgerRepository) HardDeleteLedger(ctx context.Context, ledgerID string, owner domain.OwnerID) error {
	args := m.Called(ctx, ledgerID, owner)
	return args.Error(0)
}

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  *services.LedgerService
	owner    domain.OwnerID
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockRepo)
	suite.owner = domain.OwnerID("user@example.com")
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_Success() {
	ctx := context.Background()
	input := domain.Ledger{Name: "Petty Cash", GroupName: "Current Asset", Nature: domain.Asset}

	suite.mockRepo.On("SaveLedger", ctx, mock.AnythingOfType("domain.Ledger")).Return(nil).Once()

	created, err := suite.service.CreateLedger(ctx, suite.owner, input)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.LedgerID)
	suite.Equal(suite.owner, created.Owner)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.Equal(created.CreatedAt, created.UpdatedAt)
	suite.Nil(created.DeletedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_InvalidNature() {
	ctx := context.Background()
	input := domain.Ledger{Name: "Weird", GroupName: "X", Nature: domain.LedgerNature("Equity")}

	created, err := suite.service.CreateLedger(ctx, suite.owner, input)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_MissingName() {
	ctx := context.Background()

	created, err := suite.service.CreateLedger(ctx, suite.owner, domain.Ledger{GroupName: "X", Nature: domain.Asset})

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_UnknownParent() {
	ctx := context.Background()
	parentID := "00000000-0000-0000-0000-000000000001"
	input := domain.Ledger{Name: "Child", GroupName: "X", Nature: domain.Asset, CategoryLedgerID: &parentID}

	suite.mockRepo.On("FindLedgerByID", ctx, parentID, suite.owner).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateLedger(ctx, suite.owner, input)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_DuplicatePropagates() {
	ctx := context.Background()
	input := domain.Ledger{Name: "Sales", GroupName: "Sales", Nature: domain.Income}

	suite.mockRepo.On("SaveLedger", ctx, mock.AnythingOfType("domain.Ledger")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateLedger(ctx, suite.owner, input)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerServiceTestSuite) TestDeleteLedger_GlobalForbidden() {
	ctx := context.Background()
	ledger := &domain.Ledger{LedgerID: "g1", Name: "Sales", Owner: domain.GlobalOwner}

	suite.mockRepo.On("FindLedgerByID", ctx, "g1", suite.owner).Return(ledger, nil).Once()

	err := suite.service.DeleteLedger(ctx, suite.owner, "g1", false)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SoftDeleteLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteLedger_Soft() {
	ctx := context.Background()
	ledger := &domain.Ledger{LedgerID: "l1", Name: "Petty Cash", Owner: suite.owner}

	suite.mockRepo.On("FindLedgerByID", ctx, "l1", suite.owner).Return(ledger, nil).Once()
	suite.mockRepo.On("SoftDeleteLedger", ctx, "l1", suite.owner, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteLedger(ctx, suite.owner, "l1", false)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteLedger_HardBlockedWhenReferenced() {
	ctx := context.Background()
	ledger := &domain.Ledger{LedgerID: "l1", Name: "Petty Cash", Owner: suite.owner}

	suite.mockRepo.On("FindLedgerByID", ctx, "l1", suite.owner).Return(ledger, nil).Once()
	suite.mockRepo.On("CountLinesReferencingLedger", ctx, "l1").Return(int64(3), nil).Once()

	err := suite.service.DeleteLedger(ctx, suite.owner, "l1", true)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "HardDeleteLedger", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteLedger_HardSuccess() {
	ctx := context.Background()
	ledger := &domain.Ledger{LedgerID: "l1", Name: "Petty Cash", Owner: suite.owner}

	suite.mockRepo.On("FindLedgerByID", ctx, "l1", suite.owner).Return(ledger, nil).Once()
	suite.mockRepo.On("CountLinesReferencingLedger", ctx, "l1").Return(int64(0), nil).Once()
	suite.mockRepo.On("HardDeleteLedger", ctx, "l1", suite.owner).Return(nil).Once()

	err := suite.service.DeleteLedger(ctx, suite.owner, "l1", true)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetLedgerStatement_UnknownLedgerYieldsEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("FindLedgerByID", ctx, "missing", suite.owner).Return(nil, apperrors.ErrNotFound).Once()

	lines, err := suite.service.GetLedgerStatement(ctx, suite.owner, "missing", nil, nil)

	suite.NoError(err)
	suite.NotNil(lines)
	suite.Empty(lines)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindMovementsByLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetLedgerStatement_BuildsRunningBalance() {
	ctx := context.Background()
	ledger := &domain.Ledger{LedgerID: "cash", Name: "Cash in Hand", Nature: domain.Asset, Owner: domain.GlobalOwner}
	movements := []domain.Movement{
		{EntryID: "e1", Debit: decimal.RequireFromString("100.00"), Credit: decimal.Zero},
		{EntryID: "e2", Debit: decimal.Zero, Credit: decimal.RequireFromString("40.00")},
	}

	suite.mockRepo.On("FindLedgerByID", ctx, "cash", suite.owner).Return(ledger, nil).Once()
	suite.mockRepo.On("FindMovementsByLedger", ctx, "cash", suite.owner, (*time.Time)(nil), (*time.Time)(nil)).Return(movements, nil).Once()

	lines, err := suite.service.GetLedgerStatement(ctx, suite.owner, "cash", nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)
	suite.Equal("100.00", lines[0].RunningBalance)
	suite.Equal(domain.Dr, lines[0].BalanceSide)
	suite.Equal("60.00", lines[1].RunningBalance)
	suite.Equal(domain.Dr, lines[1].BalanceSide)
}

func (suite *LedgerServiceTestSuite) TestEnsureDefaultLedgers_SeedsMissing() {
	ctx := context.Background()

	suite.mockRepo.On("FindGlobalLedgerByName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveLedger", ctx, mock.MatchedBy(func(l domain.Ledger) bool {
		return l.Owner.IsGlobal() && l.LedgerID != ""
	})).Return(nil)

	err := suite.service.EnsureDefaultLedgers(ctx)

	suite.NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveLedger", len(data.DefaultLedgers))
}

func (suite *LedgerServiceTestSuite) TestEnsureDefaultLedgers_SkipsExisting() {
	ctx := context.Background()
	existing := &domain.Ledger{LedgerID: "x", Name: "whatever", Owner: domain.GlobalOwner}

	suite.mockRepo.On("FindGlobalLedgerByName", ctx, mock.AnythingOfType("string")).Return(existing, nil)

	err := suite.service.EnsureDefaultLedgers(ctx)

	suite.NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestEnsureDefaultLedgers_ToleratesSeederRace() {
	ctx := context.Background()

	suite.mockRepo.On("FindGlobalLedgerByName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveLedger", ctx, mock.AnythingOfType("domain.Ledger")).Return(apperrors.ErrDuplicate)

	err := suite.service.EnsureDefaultLedgers(ctx)

	suite.NoError(err)
}

func (suite *LedgerServiceTestSuite) TestListLedgers_PropagatesError() {
	ctx := context.Background()
	boom := errors.New("boom")

	suite.mockRepo.On("ListLedgers", ctx, suite.owner).Return(nil, boom).Once()

	ledgers, err := suite.service.ListLedgers(ctx, suite.owner)

	suite.Nil(ledgers)
	suite.ErrorIs(err, boom)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
