package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/solterra/storefront/internal/domain/errors"
	"github.com/solterra/storefront/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"CREATE TABLE IF NOT EXISTS consents",
		"CREATE TABLE IF NOT EXISTS email_log",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_sync ON orders").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("parse error", func(t *testing.T) {
		if _, err := New(context.Background(), ":://bad", logger); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestInitSchema(t *testing.T) {
	storage, mock := newMockStorage(t)
	expectSchema(mock)

	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitSchemaError(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS orders").WillReturnError(errors.New("permission denied"))

	if err := storage.initSchema(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func sampleOrder() *model.Order {
	return &model.Order{
		ID:    "PP-1001",
		Email: "buyer@example.com",
		Items: []model.OrderItem{
			{ProductID: "sku-1", Title: "Mug", UnitPrice: 18.5, Quantity: 2},
		},
		TotalAmount:   37,
		Currency:      "EUR",
		PaymentMethod: model.PaymentMethodPayPal,
		Status:        model.OrderStatusCreated,
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrderCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.Email, order.TotalAmount, order.Currency,
			string(order.PaymentMethod), string(order.Status), order.CreatedAt).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(order.ID, "sku-1", "Mug", 18.5, 2).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	stored, err := repo.Create(context.Background(), order)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stored.ID != order.ID {
		t.Fatalf("unexpected order %+v", stored)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderCreateDuplicate(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.Email, order.TotalAmount, order.Currency,
			string(order.PaymentMethod), string(order.Status), order.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	if _, err := repo.Create(context.Background(), order); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestOrderGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	paidAt := createdAt.Add(time.Hour)

	mock.ExpectQuery("SELECT id, email, total_amount, currency, payment_method, status, created_at, paid_at, synced_at").
		WithArgs("PP-1001").
		WillReturnRows(pgxmockv3.NewRows([]string{
			"id", "email", "total_amount", "currency", "payment_method", "status", "created_at", "paid_at", "synced_at",
		}).AddRow("PP-1001", "buyer@example.com", 37.0, "EUR", "paypal", "PAID", createdAt, &paidAt, (*time.Time)(nil)))
	mock.ExpectQuery("SELECT product_id, title, unit_price, quantity FROM order_items").
		WithArgs("PP-1001").
		WillReturnRows(pgxmockv3.NewRows([]string{"product_id", "title", "unit_price", "quantity"}).
			AddRow("sku-1", "Mug", 18.5, 2))

	order, err := repo.GetByID(context.Background(), "PP-1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if order.Status != model.OrderStatusPaid || order.PaidAt == nil {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != "sku-1" {
		t.Fatalf("items not loaded: %+v", order.Items)
	}
}

func TestOrderGetByIDNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	mock.ExpectQuery("SELECT id, email, total_amount, currency, payment_method, status, created_at, paid_at, synced_at").
		WithArgs("missing").
		WillReturnRows(pgxmockv3.NewRows([]string{
			"id", "email", "total_amount", "currency", "payment_method", "status", "created_at", "paid_at", "synced_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderMarkPaid(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	paidAt := createdAt.Add(time.Hour)

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs("PP-1001", string(model.OrderStatusPaid), paidAt).
		WillReturnRows(pgxmockv3.NewRows([]string{
			"id", "email", "total_amount", "currency", "payment_method", "status", "created_at", "paid_at", "synced_at",
		}).AddRow("PP-1001", "buyer@example.com", 37.0, "EUR", "paypal", "PAID", createdAt, &paidAt, (*time.Time)(nil)))
	mock.ExpectQuery("SELECT product_id, title, unit_price, quantity FROM order_items").
		WithArgs("PP-1001").
		WillReturnRows(pgxmockv3.NewRows([]string{"product_id", "title", "unit_price", "quantity"}))

	order, err := repo.MarkPaid(context.Background(), "PP-1001", paidAt)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if order.Status != model.OrderStatusPaid {
		t.Fatalf("unexpected status %s", order.Status)
	}
}

func TestOrderSelectBatchForSync(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	paidAt := createdAt.Add(time.Hour)

	mock.ExpectQuery("SELECT id, email, total_amount, currency, payment_method, status, created_at, paid_at, synced_at").
		WithArgs(string(model.OrderStatusPaid), 10).
		WillReturnRows(pgxmockv3.NewRows([]string{
			"id", "email", "total_amount", "currency", "payment_method", "status", "created_at", "paid_at", "synced_at",
		}).
			AddRow("o-1", "a@example.com", 10.0, "USD", "stripe", "PAID", createdAt, &paidAt, (*time.Time)(nil)).
			AddRow("o-2", "b@example.com", 20.0, "USD", "paypal", "PAID", createdAt, &paidAt, (*time.Time)(nil)))
	for _, id := range []string{"o-1", "o-2"} {
		mock.ExpectQuery("SELECT product_id, title, unit_price, quantity FROM order_items").
			WithArgs(id).
			WillReturnRows(pgxmockv3.NewRows([]string{"product_id", "title", "unit_price", "quantity"}))
	}

	orders, err := repo.SelectBatchForSync(context.Background(), 10)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o-1" || orders[1].ID != "o-2" {
		t.Fatalf("unexpected batch %+v", orders)
	}
}

func TestOrderMarkSynced(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	syncedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE orders SET synced_at").
		WithArgs("o-1", syncedAt).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	if err := repo.MarkSynced(context.Background(), "o-1", syncedAt); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
}

func TestOrderMarkSyncedNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	syncedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE orders SET synced_at").
		WithArgs("missing", syncedAt).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

	if err := repo.MarkSynced(context.Background(), "missing", syncedAt); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConsentStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Consents()

	mock.ExpectQuery("SELECT status FROM consents").
		WithArgs("a@example.com").
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow("granted"))

	status, err := repo.Status(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != model.ConsentGranted {
		t.Fatalf("unexpected status %s", status)
	}
}

func TestConsentStatusDefaultsToNotSet(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Consents()

	mock.ExpectQuery("SELECT status FROM consents").
		WithArgs("unknown@example.com").
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}))

	status, err := repo.Status(context.Background(), "unknown@example.com")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != model.ConsentNotSet {
		t.Fatalf("expected not_set, got %s", status)
	}
}

func TestConsentSet(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Consents()

	mock.ExpectExec("INSERT INTO consents").
		WithArgs("a@example.com", "denied").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))

	if err := repo.Set(context.Background(), "a@example.com", model.ConsentDenied); err != nil {
		t.Fatalf("set: %v", err)
	}
}

func TestEmailLogRecord(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.EmailLog()
	sentAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO email_log").
		WithArgs("o-1", "confirmation", sentAt).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))

	if err := repo.Record(context.Background(), "o-1", model.EmailKindConfirmation, sentAt); err != nil {
		t.Fatalf("record: %v", err)
	}
}

func TestEmailLogSentKinds(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.EmailLog()

	mock.ExpectQuery("SELECT kind FROM email_log").
		WithArgs("o-1").
		WillReturnRows(pgxmockv3.NewRows([]string{"kind"}).AddRow("confirmation").AddRow("follow_up"))

	sent, err := repo.SentKinds(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("sent kinds: %v", err)
	}
	if !sent[model.EmailKindConfirmation] || !sent[model.EmailKindFollowUp] {
		t.Fatalf("unexpected kinds %+v", sent)
	}
}

func TestEmailLogStats(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.EmailLog()

	mock.ExpectQuery("SELECT kind, COUNT").
		WillReturnRows(pgxmockv3.NewRows([]string{"kind", "count"}).
			AddRow("confirmation", 4).
			AddRow("follow_up", 2))

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[model.EmailKindConfirmation] != 4 || stats[model.EmailKindFollowUp] != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectPing()

	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health check: %v", err)
	}
}
