package repositories

import (
	"context"
	"fmt"

	"salonstock/internal/models"

	"github.com/google/uuid"
)

type StockLimitRepository interface {
	Create(ctx context.Context, limit *models.StockLimit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StockLimit, error)
	Update(ctx context.Context, limit *models.StockLimit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.StockLimitFilter) ([]*models.StockLimit, error)
	ListForWarehouse(ctx context.Context, warehouseID string) ([]*models.StockLimit, error)
}

type stockLimitRepo struct {
	db Database
}

func NewStockLimitRepo(db Database) StockLimitRepository {
	return &stockLimitRepo{db: db}
}

func (r *stockLimitRepo) Create(ctx context.Context, limit *models.StockLimit) error {
	query := `
		INSERT INTO stock_limits (id, warehouse_id, barcode, min_quantity, limit_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (warehouse_id, barcode, limit_type) DO UPDATE SET min_quantity = EXCLUDED.min_quantity, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, limit.ID, limit.WarehouseID, limit.Barcode, limit.MinQuantity, limit.LimitType)
	return err
}

func (r *stockLimitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StockLimit, error) {
	limit := &models.StockLimit{}
	query := `
		SELECT id, warehouse_id, barcode, min_quantity, limit_type, created_at, updated_at
		FROM stock_limits
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&limit.ID, &limit.WarehouseID, &limit.Barcode, &limit.MinQuantity, &limit.LimitType, &limit.CreatedAt, &limit.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return limit, nil
}

func (r *stockLimitRepo) Update(ctx context.Context, limit *models.StockLimit) error {
	query := `
		UPDATE stock_limits
		SET min_quantity = $1, limit_type = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, limit.MinQuantity, limit.LimitType, limit.ID)
	return err
}

func (r *stockLimitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stock_limits WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// List applies the filter conditions that are set and paginates the result.
func (r *stockLimitRepo) List(ctx context.Context, filter *models.StockLimitFilter) ([]*models.StockLimit, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	queryBase := `
		SELECT id, warehouse_id, barcode, min_quantity, limit_type, created_at, updated_at
		FROM stock_limits
		WHERE 1=1
	`
	args := []interface{}{}
	conditionCount := 0

	if filter.WarehouseID != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND warehouse_id = $%d`, conditionCount)
		args = append(args, filter.WarehouseID)
	}
	if filter.Barcode != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND barcode = $%d`, conditionCount)
		args = append(args, *filter.Barcode)
	}
	if filter.LimitType != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND limit_type = $%d`, conditionCount)
		args = append(args, filter.LimitType)
	}

	queryBase += ` ORDER BY warehouse_id ASC, barcode ASC`

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var limits []*models.StockLimit
	for rows.Next() {
		limit := &models.StockLimit{}
		if err := rows.Scan(&limit.ID, &limit.WarehouseID, &limit.Barcode, &limit.MinQuantity, &limit.LimitType, &limit.CreatedAt, &limit.UpdatedAt); err != nil {
			return nil, err
		}
		limits = append(limits, limit)
	}
	return limits, nil
}

// ListForWarehouse returns every limit configured for the warehouse without
// pagination. An empty warehouseID returns the limits of all warehouses.
func (r *stockLimitRepo) ListForWarehouse(ctx context.Context, warehouseID string) ([]*models.StockLimit, error) {
	query := `
		SELECT id, warehouse_id, barcode, min_quantity, limit_type, created_at, updated_at
		FROM stock_limits
	`
	args := []interface{}{}
	if warehouseID != "" {
		query += ` WHERE warehouse_id = $1`
		args = append(args, warehouseID)
	}
	query += ` ORDER BY barcode ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var limits []*models.StockLimit
	for rows.Next() {
		limit := &models.StockLimit{}
		if err := rows.Scan(&limit.ID, &limit.WarehouseID, &limit.Barcode, &limit.MinQuantity, &limit.LimitType, &limit.CreatedAt, &limit.UpdatedAt); err != nil {
			return nil, err
		}
		limits = append(limits, limit)
	}
	return limits, nil
}
