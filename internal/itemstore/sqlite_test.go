package itemstore

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(&Config{
		SQLitePath:   filepath.Join(t.TempDir(), "items.db"),
		KeyAttribute: "id",
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_PutGetRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	table, err := store.Table(ctx, "music")
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	item := Item{"id": "1000", "artist": "The Vines", "year": float64(2002)}
	if _, err := table.Put(ctx, item); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	ack, err := table.Get(ctx, Key{"id": "1000"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(ack["Item"], item) {
		t.Errorf("Get() = %#v, want %#v", ack["Item"], item)
	}
}

func TestSQLiteStore_GetMissingItem(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	table, _ := store.Table(ctx, "t")
	ack, err := table.Get(ctx, Key{"id": "nope"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(ack) != 0 {
		t.Errorf("Get() = %#v, want empty ack", ack)
	}
}

func TestSQLiteStore_PutOverwrites(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	table, _ := store.Table(ctx, "t")

	for _, status := range []string{"old", "new"} {
		if _, err := table.Put(ctx, Item{"id": "1", "status": status}); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	ack, err := table.Get(ctx, Key{"id": "1"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ack["Item"].(Item)["status"] != "new" {
		t.Errorf("Item = %#v, want overwritten status", ack["Item"])
	}
}

func TestSQLiteStore_PutRequiresKeyAttribute(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	table, _ := store.Table(ctx, "t")

	if _, err := table.Put(ctx, Item{"name": "keyless"}); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Put() error = %v, want ErrMissingKey", err)
	}
}

func TestSQLiteStore_UpdateSetExpression(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	table, _ := store.Table(ctx, "t")

	if _, err := table.Put(ctx, Item{"id": "1", "status": "old", "other": "kept"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	ack, err := table.Update(ctx, UpdateInput{
		Key:                       Key{"id": "1"},
		UpdateExpression:          "SET #s = :s",
		ExpressionAttributeNames:  map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]any{":s": "new"},
		ReturnValues:              "ALL_NEW",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	attrs := ack["Attributes"].(Item)
	if attrs["status"] != "new" || attrs["other"] != "kept" {
		t.Errorf("Attributes = %#v", attrs)
	}
}

func TestSQLiteStore_UpdateRejectsConditions(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	table, _ := store.Table(ctx, "t")

	_, err := table.Update(ctx, UpdateInput{
		Key:                 Key{"id": "1"},
		UpdateExpression:    "SET a = :a",
		ConditionExpression: "attribute_exists(id)",
		ExpressionAttributeValues: map[string]any{
			":a": 1,
		},
	})
	if !errors.Is(err, ErrUnsupportedFeature) {
		t.Errorf("Update() error = %v, want ErrUnsupportedFeature", err)
	}
}

func TestSQLiteStore_DeleteThenGet(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	table, _ := store.Table(ctx, "t")

	if _, err := table.Put(ctx, Item{"id": "1"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := table.Delete(ctx, Key{"id": "1"}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	ack, err := table.Get(ctx, Key{"id": "1"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(ack) != 0 {
		t.Errorf("Get() after delete = %#v, want empty ack", ack)
	}
}

func TestSQLiteStore_ScanIsScopedToTable(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	music, _ := store.Table(ctx, "music")
	books, _ := store.Table(ctx, "books")

	for _, id := range []string{"1", "2"} {
		if _, err := music.Put(ctx, Item{"id": id}); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
	if _, err := books.Put(ctx, Item{"id": "1"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	result, err := music.Scan(ctx, ScanInput{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Count != 2 {
		t.Errorf("Scan() count = %d, want 2", result.Count)
	}
}

func TestSQLiteStore_ScanRejectsFilters(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	table, _ := store.Table(ctx, "t")

	_, err := table.Scan(ctx, ScanInput{FilterExpression: "attribute_exists(x)"})
	if !errors.Is(err, ErrUnsupportedFeature) {
		t.Errorf("Scan() error = %v, want ErrUnsupportedFeature", err)
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{SQLitePath: filepath.Join(dir, "items.db"), KeyAttribute: "id"}
	ctx := context.Background()

	store, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	table, _ := store.Table(ctx, "t")
	if _, err := table.Put(ctx, Item{"id": "1"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	store.Close()

	// Reopening runs migrations again; they must be idempotent and the data
	// must still be there.
	reopened, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	table, _ = reopened.Table(ctx, "t")
	ack, err := table.Get(ctx, Key{"id": "1"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := ack["Item"]; !ok {
		t.Error("item did not survive reopen")
	}
}
