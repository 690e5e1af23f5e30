package blob

import "context"

// Tiered layers the in-memory cache over a durable backing store. Writes go
// to both tiers, reads hit memory first and repopulate it from the backing
// store on miss, deletes evict both. With a nil backing store it behaves
// exactly like the memory store alone.
type Tiered struct {
	cache   *MemoryStore
	backing Store
}

func NewTiered(cache *MemoryStore, backing Store) *Tiered {
	return &Tiered{cache: cache, backing: backing}
}

func (t *Tiered) Put(ctx context.Context, key, contentType string, data []byte) error {
	if err := t.cache.Put(ctx, key, contentType, data); err != nil {
		return err
	}
	if t.backing != nil {
		return t.backing.Put(ctx, key, contentType, data)
	}
	return nil
}

func (t *Tiered) Get(ctx context.Context, key string) (*Object, error) {
	obj, err := t.cache.Get(ctx, key)
	if err == nil {
		return obj, nil
	}
	if t.backing == nil {
		return nil, ErrNotFound
	}
	obj, err = t.backing.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = t.cache.Put(ctx, key, obj.ContentType, obj.Data)
	return obj, nil
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	if err := t.cache.Delete(ctx, key); err != nil {
		return err
	}
	if t.backing != nil {
		return t.backing.Delete(ctx, key)
	}
	return nil
}
