package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonstock/internal/analytics"
	"salonstock/internal/caching"
	"salonstock/internal/models"
	"salonstock/internal/normalize"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDashboardService mocks the services.DashboardService interface for testing
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error) {
	args := m.Called(ctx, warehouseID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Snapshot), args.Error(1)
}

func (m *MockDashboardService) RefreshDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error) {
	args := m.Called(ctx, warehouseID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Snapshot), args.Error(1)
}

func (m *MockDashboardService) CollectInputs(ctx context.Context, warehouseID string) (analytics.Inputs, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).(analytics.Inputs), args.Error(1)
}

// MockStockAlertRepository mocks the repositories.StockAlertRepository interface for testing
type MockStockAlertRepository struct {
	mock.Mock
}

func (m *MockStockAlertRepository) Create(ctx context.Context, alert *models.StockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockStockAlertRepository) ListRecent(ctx context.Context, warehouseID string, limit int) ([]*models.StockAlert, error) {
	args := m.Called(ctx, warehouseID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockAlert), args.Error(1)
}

func (m *MockStockAlertRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheService mocks the caching.CacheService interface for testing
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPayload(ctx context.Context, resource, warehouseID string) (interface{}, error) {
	args := m.Called(ctx, resource, warehouseID)
	return args.Get(0), args.Error(1)
}

func (m *MockCacheService) SetPayload(ctx context.Context, resource, warehouseID string, payload interface{}, ttl time.Duration) error {
	args := m.Called(ctx, resource, warehouseID, payload, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error) {
	args := m.Called(ctx, warehouseID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Snapshot), args.Error(1)
}

func (m *MockCacheService) SetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange, snapshot *analytics.Snapshot, ttl time.Duration) error {
	args := m.Called(ctx, warehouseID, rng, snapshot, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateDashboards(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) GetReportJob(ctx context.Context, jobID string) (*models.ReportJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportJob), args.Error(1)
}

func (m *MockCacheService) SetReportJob(ctx context.Context, job *models.ReportJob, ttl time.Duration) error {
	args := m.Called(ctx, job, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateAllCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// LowStockAlertServiceTestSuite is the test suite for LowStockAlertService
type LowStockAlertServiceTestSuite struct {
	suite.Suite
	mockDashboards *MockDashboardService
	mockAlertsRepo *MockStockAlertRepository
	mockCache      *MockCacheService
	service        *LowStockAlertService
	ctx            context.Context
}

func (suite *LowStockAlertServiceTestSuite) SetupTest() {
	suite.mockDashboards = &MockDashboardService{}
	suite.mockAlertsRepo = &MockStockAlertRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewLowStockAlertService(suite.mockDashboards, suite.mockAlertsRepo, suite.mockCache)
	suite.ctx = context.Background()
}

func (suite *LowStockAlertServiceTestSuite) TearDownTest() {
	suite.mockDashboards.AssertExpectations(suite.T())
	suite.mockAlertsRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestLowStockAlertServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LowStockAlertServiceTestSuite))
}

// shortStockInputs builds inputs where warehouse wh-1 holds one item of
// barcode 100 against a minimum of three.
func shortStockInputs() analytics.Inputs {
	return analytics.Inputs{
		Items: []normalize.InventoryItem{
			{ID: "item-1", Barcode: barcodePtr(100), WarehouseID: "wh-1"},
		},
		Limits: []models.StockLimit{
			{ID: uuid.New(), WarehouseID: "wh-1", Barcode: 100, MinQuantity: 3, LimitType: models.LimitTypeQuantity},
		},
	}
}

func (suite *LowStockAlertServiceTestSuite) TestCheckLowStock_RecordsNewAlerts() {
	suite.mockDashboards.On("CollectInputs", suite.ctx, "").Return(shortStockInputs(), nil).Once()

	key := caching.AlertSentKey("wh-1", 100)
	suite.mockCache.On("GetString", suite.ctx, key).Return("", nil).Once()
	suite.mockAlertsRepo.On("Create", suite.ctx, mock.MatchedBy(func(alert *models.StockAlert) bool {
		return alert.WarehouseID == "wh-1" &&
			alert.Barcode == 100 &&
			alert.MinQuantity == 3 &&
			alert.Current == 1 &&
			alert.Delta == 2 &&
			alert.ID != uuid.Nil
	})).Return(nil).Once()
	suite.mockCache.On("SetString", suite.ctx, key, mock.Anything, alertDedupeTTL).Return(nil).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 1)
	assert.Equal(suite.T(), 2, alerts[0].Delta)
}

func (suite *LowStockAlertServiceTestSuite) TestCheckLowStock_SkipsRecentlyAlerted() {
	suite.mockDashboards.On("CollectInputs", suite.ctx, "").Return(shortStockInputs(), nil).Once()

	key := caching.AlertSentKey("wh-1", 100)
	suite.mockCache.On("GetString", suite.ctx, key).Return("2024-05-15T08:00:00Z", nil).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 0)
	suite.mockAlertsRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *LowStockAlertServiceTestSuite) TestCheckLowStock_NothingBelowMinimum() {
	inputs := analytics.Inputs{
		Items: []normalize.InventoryItem{
			{ID: "item-1", Barcode: barcodePtr(100), WarehouseID: "wh-1"},
			{ID: "item-2", Barcode: barcodePtr(100), WarehouseID: "wh-1"},
		},
		Limits: []models.StockLimit{
			{ID: uuid.New(), WarehouseID: "wh-1", Barcode: 100, MinQuantity: 2},
		},
	}
	suite.mockDashboards.On("CollectInputs", suite.ctx, "").Return(inputs, nil).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 0)
	suite.mockAlertsRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *LowStockAlertServiceTestSuite) TestCheckLowStock_CollectError() {
	suite.mockDashboards.On("CollectInputs", suite.ctx, "").Return(analytics.Inputs{}, errors.New("core API returned status 502")).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), alerts)
}

func (suite *LowStockAlertServiceTestSuite) TestCheckLowStock_CreateFailureSkipsMarker() {
	suite.mockDashboards.On("CollectInputs", suite.ctx, "").Return(shortStockInputs(), nil).Once()

	key := caching.AlertSentKey("wh-1", 100)
	suite.mockCache.On("GetString", suite.ctx, key).Return("", nil).Once()
	suite.mockAlertsRepo.On("Create", suite.ctx, mock.Anything).Return(errors.New("database connection failed")).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	// A failed insert leaves no marker so the next sweep retries.
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 0)
	suite.mockCache.AssertNotCalled(suite.T(), "SetString")
}

func (suite *LowStockAlertServiceTestSuite) TestCheckLowStock_MarkerReadFailureSkips() {
	suite.mockDashboards.On("CollectInputs", suite.ctx, "").Return(shortStockInputs(), nil).Once()

	key := caching.AlertSentKey("wh-1", 100)
	suite.mockCache.On("GetString", suite.ctx, key).Return("", errors.New("redis down")).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	// Without a readable marker the sweep must not risk duplicate alerts.
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 0)
	suite.mockAlertsRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *LowStockAlertServiceTestSuite) TestListRecentAlerts() {
	expected := []*models.StockAlert{
		{ID: uuid.New(), WarehouseID: "wh-1", Barcode: 100, Delta: 2},
	}
	suite.mockAlertsRepo.On("ListRecent", suite.ctx, "wh-1", 20).Return(expected, nil).Once()

	alerts, err := suite.service.ListRecentAlerts(suite.ctx, "wh-1", 20)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 1)
}

func (suite *LowStockAlertServiceTestSuite) TestPruneAlerts() {
	suite.mockAlertsRepo.On("DeleteBefore", suite.ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		return cutoff.Before(time.Now())
	})).Return(int64(7), nil).Once()

	err := suite.service.PruneAlerts(suite.ctx, 30*24*time.Hour)

	assert.NoError(suite.T(), err)
}

func (suite *LowStockAlertServiceTestSuite) TestPruneAlerts_Error() {
	suite.mockAlertsRepo.On("DeleteBefore", suite.ctx, mock.Anything).Return(int64(0), errors.New("database connection failed")).Once()

	err := suite.service.PruneAlerts(suite.ctx, 30*24*time.Hour)

	assert.Error(suite.T(), err)
}

func (suite *LowStockAlertServiceTestSuite) TestScheduledLowStockCheck() {
	suite.mockDashboards.On("CollectInputs", suite.ctx, "").Return(analytics.Inputs{}, nil).Once()

	err := suite.service.ScheduledLowStockCheck(suite.ctx)

	assert.NoError(suite.T(), err)
}

func (suite *LowStockAlertServiceTestSuite) TestLogLowStockAlerts_DoesNotPanic() {
	suite.service.LogLowStockAlerts(nil)
	suite.service.LogLowStockAlerts([]analytics.LowStockItem{
		{WarehouseID: "wh-1", Barcode: 100, MinQuantity: 5, Current: 2, Delta: 3},
	})
}

// Helper function to create float64 pointer
func barcodePtr(f float64) *float64 {
	return &f
}
