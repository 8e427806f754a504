package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// stores every kind in one jsonb table
type PostgresBackend struct {
	db *pgxpool.Pool
}

func NewPostgresBackend(db *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// connects to databaseURL and ensures the records table exists
func NewPostgresBackendFromURL(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	backend := NewPostgresBackend(db)
	if err := backend.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return backend, nil
}

// creates the records table if it doesn't exist
func (p *PostgresBackend) Initialize(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createRecordsTableQuery); err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}

	return nil
}

func (p *PostgresBackend) Insert(ctx context.Context, kind string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(ctx, insertRecordQuery, kind, doc.ID(), string(data))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}

		return err
	}

	return nil
}

func (p *PostgresBackend) Find(ctx context.Context, kind string, q Query) ([]Document, error) {
	criteria := "{}"
	if len(q.Criteria) > 0 {
		raw, err := json.Marshal(q.Criteria)
		if err != nil {
			return nil, err
		}
		criteria = string(raw)
	}

	query := findRecordsAscQuery
	if q.Order.Desc {
		query = findRecordsDescQuery
	}

	// LIMIT NULL is unlimited
	var limit any
	if q.Limit > 0 {
		limit = q.Limit
	}

	rows, err := p.db.Query(ctx, query, kind, criteria, q.Order.Field, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

func (p *PostgresBackend) Get(ctx context.Context, kind, id string) (Document, error) {
	doc, err := scanDocument(p.db.QueryRow(ctx, getRecordQuery, kind, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	return doc, err
}

func (p *PostgresBackend) Replace(ctx context.Context, kind, id string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	tag, err := p.db.Exec(ctx, replaceRecordQuery, kind, id, string(data))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresBackend) Increment(ctx context.Context, kind, id, field string, delta int, updated string) (Document, error) {
	doc, err := scanDocument(p.db.QueryRow(ctx, incrementRecordQuery, kind, id, field, delta, updated))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	return doc, err
}

func (p *PostgresBackend) Delete(ctx context.Context, kind, id string) error {
	tag, err := p.db.Exec(ctx, deleteRecordQuery, kind, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresBackend) Clear(ctx context.Context, kind string) error {
	_, err := p.db.Exec(ctx, clearRecordsQuery, kind)
	return err
}

func (p *PostgresBackend) Close() error {
	p.db.Close()
	return nil
}

func scanDocument(row pgx.Row) (Document, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("stored record is not a JSON object: %w", err)
	}

	return doc, nil
}
