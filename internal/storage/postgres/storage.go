package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; it lets tests
// substitute a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// executor is satisfied by both the pool and pgx.Tx, so the same statement
// helpers serve plain and transactional access.
type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Storage implements the document-store collaborator on top of PostgreSQL.
// Records live in a single JSONB documents table partitioned by collection
// name; the optional key column carries the identity field and backs the
// conditional-insert uniqueness guarantee.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
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

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
            id BIGSERIAL PRIMARY KEY,
            collection TEXT NOT NULL,
            key TEXT,
            doc JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_identity
            ON documents(collection, key) WHERE key IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_doc ON documents USING GIN (doc)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// Insert appends a record to the collection.
func (s *Storage) Insert(ctx context.Context, collection string, rec model.Record) error {
	return insertDoc(ctx, s.pool, collection, rec)
}

// InsertUnique appends a record keyed by keyField. The existence check and
// the insert are a single statement, so concurrent registrations of the
// same identity cannot both succeed.
func (s *Storage) InsertUnique(ctx context.Context, collection, keyField string, rec model.Record) error {
	return insertUniqueDoc(ctx, s.pool, collection, keyField, rec)
}

// Find returns records matching the field-equality predicate. Any failure
// degrades to an empty result; the collaborator never raises to the core.
func (s *Storage) Find(ctx context.Context, collection string, m repository.Match) []model.Record {
	return findDocs(ctx, s.pool, s.logger, collection, m)
}

// Update merges fields into every record matching the predicate.
func (s *Storage) Update(ctx context.Context, collection string, m repository.Match, fields model.Record) error {
	return updateDocs(ctx, s.pool, collection, m, fields)
}

// Delete removes every record matching the predicate.
func (s *Storage) Delete(ctx context.Context, collection string, m repository.Match) error {
	return deleteDocs(ctx, s.pool, collection, m)
}

// Atomic runs fn against a transactional view of the store.
func (s *Storage) Atomic(ctx context.Context, fn func(repository.DocStore) error) error {
	return s.withinTransaction(ctx, func(tx pgx.Tx) error {
		return fn(&txStore{tx: tx, logger: s.logger})
	})
}

func (s *Storage) withinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// txStore exposes the document operations inside an open transaction.
type txStore struct {
	tx     pgx.Tx
	logger *slog.Logger
}

func (t *txStore) Insert(ctx context.Context, collection string, rec model.Record) error {
	return insertDoc(ctx, t.tx, collection, rec)
}

func (t *txStore) InsertUnique(ctx context.Context, collection, keyField string, rec model.Record) error {
	return insertUniqueDoc(ctx, t.tx, collection, keyField, rec)
}

func (t *txStore) Find(ctx context.Context, collection string, m repository.Match) []model.Record {
	return findDocs(ctx, t.tx, t.logger, collection, m)
}

func (t *txStore) Update(ctx context.Context, collection string, m repository.Match, fields model.Record) error {
	return updateDocs(ctx, t.tx, collection, m, fields)
}

func (t *txStore) Delete(ctx context.Context, collection string, m repository.Match) error {
	return deleteDocs(ctx, t.tx, collection, m)
}

// Atomic on an already transactional view runs fn directly.
func (t *txStore) Atomic(ctx context.Context, fn func(repository.DocStore) error) error {
	return fn(t)
}

// --- statement helpers shared by pool and transaction access ---

func insertDoc(ctx context.Context, ex executor, collection string, rec model.Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	const query = `INSERT INTO documents (collection, doc) VALUES ($1, $2)`
	if _, err := ex.Exec(ctx, query, collection, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

func insertUniqueDoc(ctx context.Context, ex executor, collection, keyField string, rec model.Record) error {
	keyValue, ok := rec[keyField]
	if !ok {
		return fmt.Errorf("%w: record misses key field %q", domainErrors.ErrMalformedRecord, keyField)
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	const query = `INSERT INTO documents (collection, key, doc) VALUES ($1, $2, $3)
                   ON CONFLICT (collection, key) WHERE key IS NOT NULL DO NOTHING`
	tag, err := ex.Exec(ctx, query, collection, fmt.Sprintf("%v", keyValue), doc)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrDuplicateIdentity
	}
	return nil
}

func findDocs(ctx context.Context, ex executor, logger *slog.Logger, collection string, m repository.Match) []model.Record {
	predicate, err := json.Marshal(m)
	if err != nil {
		logger.Error("encode predicate failed", slog.String("collection", collection), slog.String("error", err.Error()))
		return nil
	}

	const query = `SELECT doc FROM documents WHERE collection=$1 AND doc @> $2 ORDER BY id`
	rows, err := ex.Query(ctx, query, collection, predicate)
	if err != nil {
		logger.Error("find failed", slog.String("collection", collection), slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	var result []model.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			logger.Error("scan document failed", slog.String("collection", collection), slog.String("error", err.Error()))
			return nil
		}
		var rec model.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Error("decode document failed", slog.String("collection", collection), slog.String("error", err.Error()))
			continue
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		logger.Error("iterate documents failed", slog.String("collection", collection), slog.String("error", err.Error()))
		return nil
	}
	return result
}

func updateDocs(ctx context.Context, ex executor, collection string, m repository.Match, fields model.Record) error {
	predicate, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode predicate: %w", err)
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	const query = `UPDATE documents SET doc = doc || $3 WHERE collection=$1 AND doc @> $2`
	if _, err := ex.Exec(ctx, query, collection, predicate, patch); err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	return nil
}

func deleteDocs(ctx context.Context, ex executor, collection string, m repository.Match) error {
	predicate, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode predicate: %w", err)
	}
	const query = `DELETE FROM documents WHERE collection=$1 AND doc @> $2`
	if _, err := ex.Exec(ctx, query, collection, predicate); err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	return nil
}
