package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// Table is a typed view over one named map. Values are stored as JSON.
type Table[V any] struct {
	store Store
	name  Map
}

// NewTable binds a typed table to a map in store.
func NewTable[V any](store Store, name Map) Table[V] {
	return Table[V]{store: store, name: name}
}

// Get loads the value stored under key.
func (t Table[V]) Get(ctx context.Context, key string) (V, bool, error) {
	return t.read(ctx, nil, key)
}

// Exists reports whether key is present.
func (t Table[V]) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := t.store.Get(ctx, t.name, key)
	return ok, err
}

// Put stages value under key in b.
func (t Table[V]) Put(b *Batch, key string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", t.name, key, err)
	}
	b.put(t.name, key, raw)
	return nil
}

func (t Table[V]) read(ctx context.Context, b *Batch, key string) (V, bool, error) {
	var (
		zero V
		raw  []byte
		ok   bool
		err  error
	)
	if b != nil {
		raw, ok, err = b.get(ctx, t.name, key)
	} else {
		raw, ok, err = t.store.Get(ctx, t.name, key)
	}
	if err != nil {
		return zero, false, fmt.Errorf("read %s/%s: %w", t.name, key, err)
	}
	if !ok {
		return zero, false, nil
	}
	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("decode %s/%s: %w", t.name, key, err)
	}
	return v, true, nil
}

// Index maps a key to an append-only sequence kept in insertion order.
type Index[V any] struct {
	table Table[[]V]
}

// NewIndex binds a typed index to a map in store.
func NewIndex[V any](store Store, name Map) Index[V] {
	return Index[V]{table: NewTable[[]V](store, name)}
}

// List returns the sequence under key; ok is false when the key has never
// been written.
func (i Index[V]) List(ctx context.Context, key string) ([]V, bool, error) {
	return i.table.Get(ctx, key)
}

// AppendOrCreate stages value at the end of the sequence under key, starting
// a single-element sequence when the key is new.
func (i Index[V]) AppendOrCreate(ctx context.Context, b *Batch, key string, value V) error {
	current, _, err := i.table.read(ctx, b, key)
	if err != nil {
		return err
	}
	next := make([]V, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, value)
	return i.table.Put(b, key, next)
}
