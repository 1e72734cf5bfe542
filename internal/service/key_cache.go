package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"stash-connect/internal/domain"
)

// KeyCache guarda claves resueltas indexadas por el par (tipo, id).
type KeyCache interface {
	Get(ctx context.Context, ref domain.KeyRef) (domain.SymmetricKey, bool, error)
	Set(ctx context.Context, ref domain.KeyRef, key domain.SymmetricKey) error
}

type memoryKeyCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[domain.KeyRef]memoryKeyEntry
}

type memoryKeyEntry struct {
	key     domain.SymmetricKey
	expires time.Time
}

func NewMemoryKeyCache(ttl time.Duration) KeyCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &memoryKeyCache{
		ttl:   ttl,
		items: make(map[domain.KeyRef]memoryKeyEntry),
	}
}

func (c *memoryKeyCache) Get(_ context.Context, ref domain.KeyRef) (domain.SymmetricKey, bool, error) {
	c.mu.RLock()
	entry, ok := c.items[ref]
	c.mu.RUnlock()
	if !ok || time.Now().UTC().After(entry.expires) {
		return nil, false, nil
	}
	return append(domain.SymmetricKey(nil), entry.key...), true, nil
}

func (c *memoryKeyCache) Set(_ context.Context, ref domain.KeyRef, key domain.SymmetricKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[ref] = memoryKeyEntry{
		key:     append(domain.SymmetricKey(nil), key...),
		expires: time.Now().UTC().Add(c.ttl),
	}
	return nil
}

// Sealer cifra las claves antes de sacarlas del proceso.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisKeyCache struct {
	client redisKVClient
	sealer Sealer
	ttl    time.Duration
	prefix string
}

// NewRedisKeyCache devuelve nil si falta el cliente o el sellador: nunca se guardan claves en claro.
func NewRedisKeyCache(client *redis.Client, sealer Sealer, ttl time.Duration) KeyCache {
	if client == nil || sealer == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisKeyCache{
		client: client,
		sealer: sealer,
		ttl:    ttl,
		prefix: "stash:key:",
	}
}

func (c *redisKeyCache) Get(ctx context.Context, ref domain.KeyRef) (domain.SymmetricKey, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	sealed, err := c.client.Get(ctx, c.prefix+ref.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	key, err := c.sealer.Open(sealed)
	if err != nil {
		return nil, false, err
	}
	return key, true, nil
}

func (c *redisKeyCache) Set(ctx context.Context, ref domain.KeyRef, key domain.SymmetricKey) error {
	sealed, err := c.sealer.Seal(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+ref.String(), sealed, c.ttl).Err()
}

// CachedKeySource antepone una cache a otra KeySource. Las búsquedas concurrentes
// de la misma clave se agrupan para que solo una llegue a la fuente.
type CachedKeySource struct {
	source KeySource
	cache  KeyCache
	group  singleflight.Group
	logger *zap.Logger
}

func NewCachedKeySource(source KeySource, cache KeyCache, logger *zap.Logger) *CachedKeySource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedKeySource{source: source, cache: cache, logger: logger}
}

// sharedFetchTimeout acota la búsqueda compartida, que ya no depende del
// contexto de un solo llamador.
const sharedFetchTimeout = 15 * time.Second

func (c *CachedKeySource) ConversationKey(ctx context.Context, ref domain.KeyRef) (domain.SymmetricKey, error) {
	if key, ok := c.lookup(ctx, ref); ok {
		return key, nil
	}

	// La búsqueda compartida no hereda la cancelación del primer llamador;
	// cada llamador abandona la espera con su propio contexto.
	ch := c.group.DoChan(ref.String(), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		if key, ok := c.lookup(fetchCtx, ref); ok {
			return key, nil
		}
		key, err := c.source.ConversationKey(fetchCtx, ref)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if err := c.cache.Set(fetchCtx, ref, key); err != nil {
				c.logger.Warn("key cache store failed", zap.Stringer("ref", ref), zap.Error(err))
			}
		}
		return key, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(domain.SymmetricKey), nil
	}
}

func (c *CachedKeySource) lookup(ctx context.Context, ref domain.KeyRef) (domain.SymmetricKey, bool) {
	if c.cache == nil {
		return nil, false
	}
	key, ok, err := c.cache.Get(ctx, ref)
	if err != nil {
		c.logger.Warn("key cache lookup failed", zap.Stringer("ref", ref), zap.Error(err))
		return nil, false
	}
	return key, ok
}
