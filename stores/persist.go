package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/Kariqs/amexan-storefront/storage"
)

const saveTimeout = 5 * time.Second

// persister writes one store's snapshot to a storage namespace. Saves are
// best-effort: failures are logged and never reach the caller.
type persister struct {
	store     storage.Storage
	namespace string
	log       *slog.Logger

	seq     atomic.Uint64
	mu      sync.Mutex
	written uint64
}

func newPersister(s storage.Storage, namespace, component string) *persister {
	return &persister{store: s, namespace: namespace, log: logging.New(component)}
}

// pendingWrite is a snapshot taken under a store's lock and written once
// that lock is released. A write never replaces a newer one.
type pendingWrite struct {
	p      *persister
	seq    uint64
	data   []byte
	remove bool
}

// snapshot encodes v right away so later mutations cannot leak into it.
// Callers hold the store lock, which keeps sequence numbers in mutation order.
func (p *persister) snapshot(v any) pendingWrite {
	if p.store == nil {
		return pendingWrite{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		p.log.Error("failed to encode snapshot", "namespace", p.namespace, "error", err)
		return pendingWrite{}
	}
	return pendingWrite{p: p, seq: p.seq.Add(1), data: b}
}

func (p *persister) removal() pendingWrite {
	if p.store == nil {
		return pendingWrite{}
	}
	return pendingWrite{p: p, seq: p.seq.Add(1), remove: true}
}

func (w pendingWrite) write() {
	p := w.p
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if w.seq <= p.written {
		return
	}
	p.written = w.seq

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if w.remove {
		if err := p.store.Delete(ctx, p.namespace); err != nil {
			p.log.Error("failed to delete snapshot", "namespace", p.namespace, "error", err)
		}
		return
	}
	if err := p.store.Save(ctx, p.namespace, w.data); err != nil {
		p.log.Error("failed to persist snapshot", "namespace", p.namespace, "error", err)
	}
}

// load decodes the stored snapshot into v. It reports false when nothing
// was stored yet.
func (p *persister) load(ctx context.Context, v any) (bool, error) {
	if p.store == nil {
		return false, nil
	}
	b, err := p.store.Load(ctx, p.namespace)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", p.namespace, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", p.namespace, err)
	}
	return true, nil
}
