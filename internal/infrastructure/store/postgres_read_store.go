package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/example/fpv-storefront/internal/readmodel"
)

// PostgresReadStore implements ReadStoreInterface using PostgreSQL.
// Only the orders collection is persisted; other collections are ignored.
type PostgresReadStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewPostgresReadStore creates a new PostgreSQL-based read store
func NewPostgresReadStore(db *sql.DB, logger *zap.Logger) *PostgresReadStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresReadStore{db: db, logger: logger.Named("postgres_read_store")}
}

// EnsureSchema creates the read_orders table if it does not exist
func (rs *PostgresReadStore) EnsureSchema() error {
	_, err := rs.db.Exec(`
		CREATE TABLE IF NOT EXISTS read_orders (
			id TEXT PRIMARY KEY,
			order_number TEXT NOT NULL,
			status TEXT NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// Set stores a read model
func (rs *PostgresReadStore) Set(collection, id string, data any) {
	if collection != CollectionOrders {
		return
	}
	o, ok := data.(*readmodel.OrderReadModel)
	if !ok {
		rs.logger.Warn("unexpected read model type", zap.String("collection", collection))
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.setOrderUnsafe(id, o)
}

// Get retrieves a read model by id
func (rs *PostgresReadStore) Get(collection, id string) (any, bool) {
	if collection != CollectionOrders {
		return nil, false
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.getOrderUnsafe(id)
}

// GetAll retrieves all items in a collection, newest first
func (rs *PostgresReadStore) GetAll(collection string) []any {
	if collection != CollectionOrders {
		return nil
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()

	rows, err := rs.db.Query(`SELECT data FROM read_orders ORDER BY created_at DESC`)
	if err != nil {
		rs.logger.Error("failed to list orders", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var orders []any
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			rs.logger.Error("failed to scan order", zap.Error(err))
			continue
		}
		var o readmodel.OrderReadModel
		if err := json.Unmarshal(raw, &o); err != nil {
			rs.logger.Error("failed to decode order", zap.Error(err))
			continue
		}
		orders = append(orders, &o)
	}
	return orders
}

// Delete removes a read model
func (rs *PostgresReadStore) Delete(collection, id string) {
	if collection != CollectionOrders {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, err := rs.db.Exec(`DELETE FROM read_orders WHERE id = $1`, id); err != nil {
		rs.logger.Error("failed to delete order", zap.String("id", id), zap.Error(err))
	}
}

// Update modifies a read model using an update function
func (rs *PostgresReadStore) Update(collection, id string, updateFn func(current any) any) bool {
	if collection != CollectionOrders {
		return false
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	current, found := rs.getOrderUnsafe(id)
	if !found {
		return false
	}
	updated, ok := updateFn(current).(*readmodel.OrderReadModel)
	if !ok {
		return false
	}
	rs.setOrderUnsafe(id, updated)
	return true
}

func (rs *PostgresReadStore) setOrderUnsafe(id string, o *readmodel.OrderReadModel) {
	raw, err := json.Marshal(o)
	if err != nil {
		rs.logger.Error("failed to encode order", zap.String("id", id), zap.Error(err))
		return
	}
	_, err = rs.db.Exec(`
		INSERT INTO read_orders (id, order_number, status, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`, id, o.OrderNumber, o.Status, raw, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		rs.logger.Error("failed to upsert order", zap.String("id", id), zap.Error(err))
	}
}

func (rs *PostgresReadStore) getOrderUnsafe(id string) (*readmodel.OrderReadModel, bool) {
	var raw []byte
	err := rs.db.QueryRow(`SELECT data FROM read_orders WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			rs.logger.Error("failed to get order", zap.String("id", id), zap.Error(err))
		}
		return nil, false
	}
	var o readmodel.OrderReadModel
	if err := json.Unmarshal(raw, &o); err != nil {
		rs.logger.Error("failed to decode order", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	return &o, true
}
