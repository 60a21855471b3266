package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonstock/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StockAlertRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    StockAlertRepository
	context context.Context
}

func (suite *StockAlertRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewStockAlertRepo(mock)
	suite.context = context.Background()
}

func (suite *StockAlertRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestStockAlertRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StockAlertRepoTestSuite))
}

func (suite *StockAlertRepoTestSuite) TestCreate_Success() {
	alert := &models.StockAlert{
		ID:          uuid.New(),
		WarehouseID: "wh-1",
		Barcode:     7501001,
		MinQuantity: 5,
		Current:     3,
		Delta:       2,
	}

	suite.mock.ExpectExec(`
		INSERT INTO stock_alerts \(id, warehouse_id, barcode, min_quantity, current_count, delta, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\)\)
	`).WithArgs(alert.ID, alert.WarehouseID, alert.Barcode, alert.MinQuantity, alert.Current, alert.Delta).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, alert)
	assert.NoError(suite.T(), err)
}

func (suite *StockAlertRepoTestSuite) TestCreate_DatabaseError() {
	alert := &models.StockAlert{
		ID:          uuid.New(),
		WarehouseID: "wh-1",
		Barcode:     7501001,
		MinQuantity: 5,
		Current:     1,
		Delta:       4,
	}

	suite.mock.ExpectExec(`
		INSERT INTO stock_alerts \(id, warehouse_id, barcode, min_quantity, current_count, delta, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\)\)
	`).WithArgs(alert.ID, alert.WarehouseID, alert.Barcode, alert.MinQuantity, alert.Current, alert.Delta).
		WillReturnError(errors.New("database connection failed"))

	err := suite.repo.Create(suite.context, alert)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

func (suite *StockAlertRepoTestSuite) TestListRecent_Success() {
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "warehouse_id", "barcode", "min_quantity", "current_count", "delta", "created_at"}).
		AddRow(uuid.New(), "wh-1", float64(100), 5, 3, 2, now).
		AddRow(uuid.New(), "wh-1", float64(200), 4, 1, 3, now.Add(-time.Hour))

	suite.mock.ExpectQuery(`
		SELECT id, warehouse_id, barcode, min_quantity, current_count, delta, created_at
		FROM stock_alerts
		WHERE 1=1 AND warehouse_id = \$1 ORDER BY created_at DESC LIMIT \$2
	`).WithArgs("wh-1", 10).
		WillReturnRows(rows)

	result, err := suite.repo.ListRecent(suite.context, "wh-1", 10)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), float64(100), result[0].Barcode)
	assert.Equal(suite.T(), 2, result[0].Delta)
}

func (suite *StockAlertRepoTestSuite) TestListRecent_AllWarehouses() {
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "warehouse_id", "barcode", "min_quantity", "current_count", "delta", "created_at"}).
		AddRow(uuid.New(), "wh-1", float64(100), 5, 3, 2, now).
		AddRow(uuid.New(), "wh-2", float64(200), 4, 1, 3, now.Add(-time.Hour))

	suite.mock.ExpectQuery(`
		SELECT id, warehouse_id, barcode, min_quantity, current_count, delta, created_at
		FROM stock_alerts
		WHERE 1=1 ORDER BY created_at DESC LIMIT \$1
	`).WithArgs(50).
		WillReturnRows(rows)

	result, err := suite.repo.ListRecent(suite.context, "", 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "wh-2", result[1].WarehouseID)
}

func (suite *StockAlertRepoTestSuite) TestListRecent_DefaultLimit() {
	rows := pgxmock.NewRows([]string{"id", "warehouse_id", "barcode", "min_quantity", "current_count", "delta", "created_at"})

	suite.mock.ExpectQuery(`
		SELECT id, warehouse_id, barcode, min_quantity, current_count, delta, created_at
		FROM stock_alerts
		WHERE 1=1 AND warehouse_id = \$1 ORDER BY created_at DESC LIMIT \$2
	`).WithArgs("wh-1", 50).
		WillReturnRows(rows)

	result, err := suite.repo.ListRecent(suite.context, "wh-1", 0)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func (suite *StockAlertRepoTestSuite) TestDeleteBefore_ReportsRowCount() {
	cutoff := time.Now().AddDate(0, 0, -30)

	suite.mock.ExpectExec(`DELETE FROM stock_alerts WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	deleted, err := suite.repo.DeleteBefore(suite.context, cutoff)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), deleted)
}

func (suite *StockAlertRepoTestSuite) TestDeleteBefore_DatabaseError() {
	cutoff := time.Now().AddDate(0, 0, -30)

	suite.mock.ExpectExec(`DELETE FROM stock_alerts WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnError(errors.New("database connection failed"))

	deleted, err := suite.repo.DeleteBefore(suite.context, cutoff)
	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), int64(0), deleted)
}
