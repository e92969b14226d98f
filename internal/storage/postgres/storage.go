package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/solterra/storefront/internal/domain/errors"
	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage uses. pgxmock pools
// satisfy it in tests.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type consentRepository struct {
	storage *Storage
}

type emailLogRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Consents() repository.ConsentRepository {
	return &consentRepository{storage: s}
}

func (s *Storage) EmailLog() repository.EmailLogRepository {
	return &emailLogRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL DEFAULT '',
            total_amount DOUBLE PRECISION NOT NULL,
            currency TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            paid_at TIMESTAMPTZ,
            synced_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            product_id TEXT NOT NULL,
            title TEXT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            quantity INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS consents (
            email TEXT PRIMARY KEY,
            status TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS email_log (
            id SERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            kind TEXT NOT NULL,
            sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (order_id, kind)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_sync ON orders(status, synced_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	tx, err := r.storage.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	const orderQuery = `INSERT INTO orders (id, email, total_amount, currency, payment_method, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.Exec(ctx, orderQuery,
		order.ID, order.Email, order.TotalAmount, order.Currency,
		string(order.PaymentMethod), string(order.Status), order.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}

	const itemQuery = `INSERT INTO order_items (order_id, product_id, title, unit_price, quantity)
        VALUES ($1, $2, $3, $4, $5)`
	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.ProductID, item.Title, item.UnitPrice, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT id, email, total_amount, currency, payment_method, status, created_at, paid_at, synced_at
        FROM orders WHERE id=$1`
	order, err := r.scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if order.Items, err = r.loadItems(ctx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*model.Order, error) {
	const query = `UPDATE orders SET status=$2, paid_at=$3 WHERE id=$1
        RETURNING id, email, total_amount, currency, payment_method, status, created_at, paid_at, synced_at`
	order, err := r.scanOrder(r.storage.pool.QueryRow(ctx, query, id, string(model.OrderStatusPaid), paidAt))
	if err != nil {
		return nil, err
	}
	if order.Items, err = r.loadItems(ctx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) SelectBatchForSync(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT id, email, total_amount, currency, payment_method, status, created_at, paid_at, synced_at
        FROM orders WHERE status=$1 AND synced_at IS NULL ORDER BY paid_at LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, string(model.OrderStatusPaid), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = r.loadItems(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) MarkSynced(ctx context.Context, id string, syncedAt time.Time) error {
	const query = `UPDATE orders SET synced_at=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, syncedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order         model.Order
		paymentMethod string
		status        string
	)
	err := row.Scan(&order.ID, &order.Email, &order.TotalAmount, &order.Currency,
		&paymentMethod, &status, &order.CreatedAt, &order.PaidAt, &order.SyncedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	order.PaymentMethod = model.PaymentMethod(paymentMethod)
	order.Status = model.OrderStatus(status)
	return &order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	const query = `SELECT product_id, title, unit_price, quantity FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// --- ConsentRepository implementation ---

func (r *consentRepository) Status(ctx context.Context, email string) (model.ConsentStatus, error) {
	const query = `SELECT status FROM consents WHERE email=$1`
	var status string
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ConsentNotSet, nil
		}
		return model.ConsentNotSet, err
	}
	return model.ConsentStatus(status), nil
}

func (r *consentRepository) Set(ctx context.Context, email string, status model.ConsentStatus) error {
	const query = `INSERT INTO consents (email, status, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (email) DO UPDATE SET status=EXCLUDED.status, updated_at=NOW()`
	_, err := r.storage.pool.Exec(ctx, query, email, string(status))
	return err
}

// --- EmailLogRepository implementation ---

func (r *emailLogRepository) Record(ctx context.Context, orderID string, kind model.EmailKind, sentAt time.Time) error {
	const query = `INSERT INTO email_log (order_id, kind, sent_at) VALUES ($1, $2, $3)
        ON CONFLICT (order_id, kind) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, orderID, string(kind), sentAt)
	return err
}

func (r *emailLogRepository) SentKinds(ctx context.Context, orderID string) (map[model.EmailKind]bool, error) {
	const query = `SELECT kind FROM email_log WHERE order_id=$1`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sent := make(map[model.EmailKind]bool)
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, err
		}
		sent[model.EmailKind(kind)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sent, nil
}

func (r *emailLogRepository) Stats(ctx context.Context) (map[model.EmailKind]int, error) {
	const query = `SELECT kind, COUNT(*) FROM email_log GROUP BY kind`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[model.EmailKind]int)
	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats[model.EmailKind(kind)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
