package itemstore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and as the default adapter
// when no backend is configured. It records every table-level call so tests
// can assert exactly which collaborator calls the dispatcher issued.
type MemoryStore struct {
	mu      sync.RWMutex
	tables  map[string]map[string]Item // table name -> canonical key -> item
	keyAttr string

	// Calls lists store calls in order, e.g. "Table(music)", "Put(music)".
	Calls []string

	// TableErr, when set, is returned by every Table resolution.
	TableErr error
	// CallErr, when set, is returned by every table-level call.
	CallErr error
}

// NewMemoryStore creates an empty in-memory store keyed on keyAttr
// (defaulting to "id").
func NewMemoryStore(keyAttr string) *MemoryStore {
	if keyAttr == "" {
		keyAttr = defaultKeyAttribute
	}
	return &MemoryStore{
		tables:  make(map[string]map[string]Item),
		keyAttr: keyAttr,
	}
}

func (s *MemoryStore) record(call string) {
	s.Calls = append(s.Calls, call)
}

func (s *MemoryStore) Table(ctx context.Context, name string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("Table(" + name + ")")
	if s.TableErr != nil {
		return nil, s.TableErr
	}
	if name == "" {
		return nil, NewStoreError("Table", name, ErrEmptyTableName)
	}
	if _, ok := s.tables[name]; !ok {
		s.tables[name] = make(map[string]Item)
	}
	return &memoryTable{store: s, name: name}, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// ItemCount returns the number of items held for a table.
func (s *MemoryStore) ItemCount(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[name])
}

type memoryTable struct {
	store *MemoryStore
	name  string
}

func (t *memoryTable) begin(op string) error {
	t.store.record(op + "(" + t.name + ")")
	if t.store.CallErr != nil {
		return t.store.CallErr
	}
	return nil
}

func (t *memoryTable) Put(ctx context.Context, item Item) (map[string]any, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := t.begin("Put"); err != nil {
		return nil, err
	}

	keyValue, ok := item[t.store.keyAttr]
	if !ok {
		return nil, NewStoreError("Put", t.name, ErrMissingKey)
	}
	ck, err := canonicalKey(Key{t.store.keyAttr: keyValue})
	if err != nil {
		return nil, NewStoreError("Put", t.name, err)
	}

	t.store.tables[t.name][ck] = cloneItem(item)
	return map[string]any{}, nil
}

func (t *memoryTable) Get(ctx context.Context, key Key) (map[string]any, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := t.begin("Get"); err != nil {
		return nil, err
	}

	ck, err := canonicalKey(key)
	if err != nil {
		return nil, NewStoreError("Get", t.name, err)
	}

	item, ok := t.store.tables[t.name][ck]
	if !ok {
		return map[string]any{}, nil
	}
	return map[string]any{"Item": cloneItem(item)}, nil
}

func (t *memoryTable) Update(ctx context.Context, in UpdateInput) (map[string]any, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := t.begin("Update"); err != nil {
		return nil, err
	}
	if in.ConditionExpression != "" {
		return nil, NewStoreError("Update", t.name, ErrUnsupportedFeature)
	}

	assignments, err := parseSetExpression(in.UpdateExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	if err != nil {
		return nil, NewStoreError("Update", t.name, err)
	}

	ck, err := canonicalKey(in.Key)
	if err != nil {
		return nil, NewStoreError("Update", t.name, err)
	}

	item, ok := t.store.tables[t.name][ck]
	if !ok {
		item = Item{}
		for name, value := range in.Key {
			item[name] = value
		}
	} else {
		item = cloneItem(item)
	}
	for name, value := range assignments {
		item[name] = value
	}
	t.store.tables[t.name][ck] = item

	result := map[string]any{}
	if in.ReturnValues != "" && in.ReturnValues != "NONE" {
		result["Attributes"] = cloneItem(item)
	}
	return result, nil
}

func (t *memoryTable) Delete(ctx context.Context, key Key) (map[string]any, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := t.begin("Delete"); err != nil {
		return nil, err
	}

	ck, err := canonicalKey(key)
	if err != nil {
		return nil, NewStoreError("Delete", t.name, err)
	}

	delete(t.store.tables[t.name], ck)
	return map[string]any{}, nil
}

func (t *memoryTable) Scan(ctx context.Context, in ScanInput) (*ScanResult, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := t.begin("Scan"); err != nil {
		return nil, err
	}
	if in.FilterExpression != "" || in.ProjectionExpression != "" {
		return nil, NewStoreError("Scan", t.name, ErrUnsupportedFeature)
	}

	result := &ScanResult{Items: []Item{}}
	for _, item := range t.store.tables[t.name] {
		result.Items = append(result.Items, cloneItem(item))
		if in.Limit > 0 && len(result.Items) == int(in.Limit) {
			break
		}
	}
	result.Count = len(result.Items)
	return result, nil
}

// cloneItem deep-copies an item through JSON so callers cannot mutate stored
// state through the returned mapping.
func cloneItem(item Item) Item {
	raw, err := json.Marshal(item)
	if err != nil {
		return item
	}
	var out Item
	if err := json.Unmarshal(raw, &out); err != nil {
		return item
	}
	return out
}
