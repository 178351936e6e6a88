package repository

import "context"

type stagedKey struct {
	m   Map
	key string
}

// Batch collects the writes of a single operation. Reads through the batch
// see staged values first, so an operation observes its own writes before
// they are committed.
type Batch struct {
	store  Store
	writes []Write
	staged map[stagedKey]int
}

// NewBatch starts an empty batch against store.
func NewBatch(store Store) *Batch {
	return &Batch{store: store, staged: make(map[stagedKey]int)}
}

// Len returns the number of distinct keys staged.
func (b *Batch) Len() int { return len(b.writes) }

// Writes returns a copy of the staged writes in staging order.
func (b *Batch) Writes() []Write {
	out := make([]Write, len(b.writes))
	copy(out, b.writes)
	return out
}

// Commit hands every staged write to the store in one atomic call.
func (b *Batch) Commit(ctx context.Context) error {
	if len(b.writes) == 0 {
		return nil
	}
	return b.store.Commit(ctx, b.writes)
}

func (b *Batch) get(ctx context.Context, m Map, key string) ([]byte, bool, error) {
	if i, ok := b.staged[stagedKey{m, key}]; ok {
		return b.writes[i].Value, true, nil
	}
	return b.store.Get(ctx, m, key)
}

func (b *Batch) put(m Map, key string, value []byte) {
	sk := stagedKey{m, key}
	if i, ok := b.staged[sk]; ok {
		b.writes[i].Value = value
		return
	}
	b.staged[sk] = len(b.writes)
	b.writes = append(b.writes, Write{Map: m, Key: key, Value: value})
}
