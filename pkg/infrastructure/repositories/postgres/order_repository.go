// Package postgres implements the order and execution stores on PostgreSQL
// via database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/domain/repositories"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// pgUniqueViolation is the PostgreSQL error code for duplicate keys
const pgUniqueViolation = "23505"

// OrderRepository provides PostgreSQL-backed order storage. One row per
// supply order; planned and committed orders share the table and are told
// apart by status.
type OrderRepository struct {
	database *sql.DB
}

// NewOrderRepository opens the database and ensures the supply order table
// exists
func NewOrderRepository(dsn string) (*OrderRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS supply_order (" +
			" id VARCHAR (36) PRIMARY KEY," +
			" product_id VARCHAR (64) NOT NULL," +
			" order_type VARCHAR (10) NOT NULL," +
			" quantity NUMERIC (18, 6) NOT NULL," +
			" need_date DATE NOT NULL," +
			" expected_delivery_date DATE," +
			" status VARCHAR (10) NOT NULL," +
			" action_message VARCHAR (100)" +
			" );")
	if err != nil {
		return nil, fmt.Errorf("failed to create supply_order table: %w", err)
	}

	return &OrderRepository{database: db}, nil
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// Close releases the underlying database handle
func (r *OrderRepository) Close() error {
	return r.database.Close()
}

// GetOpenOrders returns every order with status FIRM or RELEASED, ordered
// by id. Quantities are normalized from the database's numeric type into
// decimals at this boundary, before any arithmetic touches them.
func (r *OrderRepository) GetOpenOrders(ctx context.Context) ([]*entities.CommittedOrder, error) {
	rows, err := r.database.QueryContext(ctx,
		"SELECT id, product_id, order_type, quantity::text, need_date, expected_delivery_date, status"+
			" FROM supply_order"+
			" WHERE status IN ('FIRM', 'RELEASED')"+
			" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query open orders: %w", err)
	}
	defer rows.Close()

	var orders []*entities.CommittedOrder
	for rows.Next() {
		order, err := scanCommittedOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read open orders: %w", err)
	}

	return orders, nil
}

// SetActionMessage writes the message text onto the order row with the
// given id
func (r *OrderRepository) SetActionMessage(ctx context.Context, orderID string, message string) error {
	result, err := r.database.ExecContext(ctx,
		"UPDATE supply_order"+
			" SET action_message = $1"+
			" WHERE id = $2",
		message,
		orderID)
	if err != nil {
		return fmt.Errorf("failed to update action message for %s: %w", orderID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return nil
}

// SaveCommittedOrder inserts a committed order row
func (r *OrderRepository) SaveCommittedOrder(ctx context.Context, order *entities.CommittedOrder) error {
	_, err := r.database.ExecContext(ctx,
		"INSERT INTO supply_order (id, product_id, order_type, quantity, need_date, expected_delivery_date, status)"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7)",
		order.ID,
		order.ProductID,
		order.OrderType.String(),
		order.Quantity.String(),
		order.NeedDate,
		order.ExpectedDeliveryDate,
		order.Status.String())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("order %s: %w", order.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert order %s: %w", order.ID, err)
	}
	return nil
}

// SavePlannedOrder inserts a planned order row in PLANNED status
func (r *OrderRepository) SavePlannedOrder(ctx context.Context, order *entities.PlannedOrder) error {
	_, err := r.database.ExecContext(ctx,
		"INSERT INTO supply_order (id, product_id, order_type, quantity, need_date, status)"+
			" VALUES ($1, $2, $3, $4, $5, $6)",
		order.ID,
		order.ProductID,
		order.OrderType.String(),
		order.Quantity.String(),
		order.NeedDate,
		entities.StatusPlanned.String())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("order %s: %w", order.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert planned order %s: %w", order.ID, err)
	}
	return nil
}

func scanCommittedOrder(rows *sql.Rows) (*entities.CommittedOrder, error) {
	var (
		order        entities.CommittedOrder
		orderType    string
		quantityText string
		delivery     sql.NullTime
		status       string
	)

	err := rows.Scan(
		&order.ID,
		&order.ProductID,
		&orderType,
		&quantityText,
		&order.NeedDate,
		&delivery,
		&status)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order row: %w", err)
	}

	order.OrderType, err = entities.ParseOrderType(orderType)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", order.ID, err)
	}
	order.Status, err = entities.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", order.ID, err)
	}
	order.Quantity, err = decimal.NewFromString(quantityText)
	if err != nil {
		return nil, fmt.Errorf("order %s: invalid quantity %q: %w", order.ID, quantityText, err)
	}

	if delivery.Valid {
		order.ExpectedDeliveryDate = delivery.Time
	} else {
		order.ExpectedDeliveryDate = order.NeedDate
	}

	return &order, nil
}
