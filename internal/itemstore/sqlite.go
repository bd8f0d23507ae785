package itemstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// defaultKeyAttribute is the identifying attribute the local adapters assume
// when the configuration does not name one.
const defaultKeyAttribute = "id"

// SQLiteStore is a local development stand-in for the managed item store.
// It keeps every collection in a single relational table keyed by
// (collection name, canonical key JSON) and supports the expression subset
// documented on each method.
type SQLiteStore struct {
	db      *sql.DB
	keyAttr string
}

// NewSQLiteStore opens (or creates) the database at cfg.SQLitePath and runs
// pending schema migrations.
func NewSQLiteStore(cfg *Config) (*SQLiteStore, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = "./data/items.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	keyAttr := cfg.KeyAttribute
	if keyAttr == "" {
		keyAttr = defaultKeyAttribute
	}

	return &SQLiteStore{db: db, keyAttr: keyAttr}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Table resolves a handle to a named collection. Collections spring into
// existence on first write, so resolution only rejects empty names.
func (s *SQLiteStore) Table(ctx context.Context, name string) (Table, error) {
	if name == "" {
		return nil, NewStoreError("Table", name, ErrEmptyTableName)
	}
	return &sqliteTable{store: s, name: name}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type sqliteTable struct {
	store *SQLiteStore
	name  string
}

// canonicalKey renders a key mapping as deterministic JSON. encoding/json
// sorts map keys, so equal mappings always produce equal strings.
func canonicalKey(key Key) (string, error) {
	raw, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (t *sqliteTable) Put(ctx context.Context, item Item) (map[string]any, error) {
	keyValue, ok := item[t.store.keyAttr]
	if !ok {
		return nil, NewStoreError("Put", t.name, ErrMissingKey)
	}

	ck, err := canonicalKey(Key{t.store.keyAttr: keyValue})
	if err != nil {
		return nil, NewStoreError("Put", t.name, err)
	}

	attrs, err := json.Marshal(item)
	if err != nil {
		return nil, NewStoreError("Put", t.name, err)
	}

	_, err = t.store.db.ExecContext(ctx,
		`INSERT INTO items (table_name, item_key, attributes, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (table_name, item_key)
		 DO UPDATE SET attributes = excluded.attributes, updated_at = CURRENT_TIMESTAMP`,
		t.name, ck, string(attrs))
	if err != nil {
		return nil, NewStoreError("Put", t.name, err)
	}

	return map[string]any{}, nil
}

func (t *sqliteTable) Get(ctx context.Context, key Key) (map[string]any, error) {
	ck, err := canonicalKey(key)
	if err != nil {
		return nil, NewStoreError("Get", t.name, err)
	}

	var attrs string
	err = t.store.db.QueryRowContext(ctx,
		`SELECT attributes FROM items WHERE table_name = ? AND item_key = ?`,
		t.name, ck).Scan(&attrs)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, NewStoreError("Get", t.name, err)
	}

	var item Item
	if err := json.Unmarshal([]byte(attrs), &item); err != nil {
		return nil, NewStoreError("Get", t.name, err)
	}
	return map[string]any{"Item": item}, nil
}

// Update supports the SET-only expression subset parsed by
// parseSetExpression. Condition expressions are not evaluated locally.
// Like the managed store, updating a missing item creates it.
func (t *sqliteTable) Update(ctx context.Context, in UpdateInput) (map[string]any, error) {
	if in.ConditionExpression != "" {
		return nil, NewStoreError("Update", t.name,
			fmt.Errorf("%w: condition expressions", ErrUnsupportedFeature))
	}

	assignments, err := parseSetExpression(in.UpdateExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	if err != nil {
		return nil, NewStoreError("Update", t.name, err)
	}

	ack, err := t.Get(ctx, in.Key)
	if err != nil {
		return nil, err
	}

	item, _ := ack["Item"].(Item)
	if item == nil {
		item = Item{}
		for name, value := range in.Key {
			item[name] = value
		}
	}
	for name, value := range assignments {
		item[name] = value
	}

	if _, err := t.Put(ctx, item); err != nil {
		return nil, err
	}

	result := map[string]any{}
	if in.ReturnValues != "" && in.ReturnValues != "NONE" {
		result["Attributes"] = item
	}
	return result, nil
}

func (t *sqliteTable) Delete(ctx context.Context, key Key) (map[string]any, error) {
	ck, err := canonicalKey(key)
	if err != nil {
		return nil, NewStoreError("Delete", t.name, err)
	}

	_, err = t.store.db.ExecContext(ctx,
		`DELETE FROM items WHERE table_name = ? AND item_key = ?`, t.name, ck)
	if err != nil {
		return nil, NewStoreError("Delete", t.name, err)
	}
	return map[string]any{}, nil
}

// Scan returns every item in the collection. Filter and projection
// expressions are not evaluated locally and are rejected outright rather
// than silently returning unfiltered data.
func (t *sqliteTable) Scan(ctx context.Context, in ScanInput) (*ScanResult, error) {
	if in.FilterExpression != "" || in.ProjectionExpression != "" {
		return nil, NewStoreError("Scan", t.name,
			fmt.Errorf("%w: scan filter expressions", ErrUnsupportedFeature))
	}

	query := `SELECT attributes FROM items WHERE table_name = ? ORDER BY item_key`
	args := []any{t.name}
	if in.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, in.Limit)
	}

	rows, err := t.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStoreError("Scan", t.name, err)
	}
	defer rows.Close()

	result := &ScanResult{Items: []Item{}}
	for rows.Next() {
		var attrs string
		if err := rows.Scan(&attrs); err != nil {
			return nil, NewStoreError("Scan", t.name, err)
		}
		var item Item
		if err := json.Unmarshal([]byte(attrs), &item); err != nil {
			return nil, NewStoreError("Scan", t.name, err)
		}
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreError("Scan", t.name, err)
	}

	result.Count = len(result.Items)
	return result, nil
}
