package repositories

import (
	"context"
	"fmt"
	"time"

	"salonstock/internal/models"
)

type StockAlertRepository interface {
	Create(ctx context.Context, alert *models.StockAlert) error
	ListRecent(ctx context.Context, warehouseID string, limit int) ([]*models.StockAlert, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type stockAlertRepo struct {
	db Database
}

func NewStockAlertRepo(db Database) StockAlertRepository {
	return &stockAlertRepo{db: db}
}

func (r *stockAlertRepo) Create(ctx context.Context, alert *models.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, warehouse_id, barcode, min_quantity, current_count, delta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, alert.ID, alert.WarehouseID, alert.Barcode, alert.MinQuantity, alert.Current, alert.Delta)
	return err
}

// ListRecent returns the newest alerts first. An empty warehouseID spans all
// warehouses.
func (r *stockAlertRepo) ListRecent(ctx context.Context, warehouseID string, limit int) ([]*models.StockAlert, error) {
	if limit == 0 {
		limit = 50
	}
	query := `
		SELECT id, warehouse_id, barcode, min_quantity, current_count, delta, created_at
		FROM stock_alerts
		WHERE 1=1
	`
	args := []interface{}{}
	conditionCount := 0

	if warehouseID != "" {
		conditionCount++
		query += fmt.Sprintf(` AND warehouse_id = $%d`, conditionCount)
		args = append(args, warehouseID)
	}

	conditionCount++
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, conditionCount)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*models.StockAlert
	for rows.Next() {
		alert := &models.StockAlert{}
		if err := rows.Scan(&alert.ID, &alert.WarehouseID, &alert.Barcode, &alert.MinQuantity, &alert.Current, &alert.Delta, &alert.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// DeleteBefore purges alerts older than the cutoff and reports how many rows went away.
func (r *stockAlertRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM stock_alerts WHERE created_at < $1`
	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
