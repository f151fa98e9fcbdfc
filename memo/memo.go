package memo

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kestrelops/memocache/codec"
	"github.com/kestrelops/memocache/store"
)

// DefaultTTL is the reference time-to-live for cached entries.
const DefaultTTL = 3600 * time.Second

// Cache applies the get-or-compute protocol against a durable store.
//
// A Cache holds no entry state in memory: every invocation is an
// independent run of the protocol, and the store is the sole source of
// truth. It is safe for concurrent use. Unless single-flight is enabled,
// no ordering is provided between concurrent invocations of the same
// key: concurrent misses each run the operation and the last write wins.
type Cache struct {
	store   store.Store
	codec   codec.Codec
	log     *zap.Logger
	tracer  trace.Tracer
	metrics *engineMetrics
	group   *singleflight.Group

	writes sync.WaitGroup
}

// New creates a Cache. With no options it stores JSON entries under
// DefaultRoot() and emits no logs, metrics, or traces.
func New(opts ...Option) (*Cache, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m, err := newEngineMetrics(o.meterProvider.Meter(instrumentation))
	if err != nil {
		return nil, err
	}

	c := &Cache{
		store:   o.store,
		codec:   o.codec,
		log:     o.logger,
		tracer:  o.tracerProvider.Tracer(instrumentation),
		metrics: m,
	}
	if o.singleFlight {
		c.group = &singleflight.Group{}
	}
	return c, nil
}

// Wait blocks until all background persistence attempts started so far
// have finished. Intended for graceful shutdown.
func (c *Cache) Wait() { c.writes.Wait() }

// GetOrCompute returns the entry stored under key if it is younger than
// ttl, decoding it as T. Otherwise it runs compute; a failure is
// returned unchanged and nothing is written, while a success payload is
// returned immediately and persisted in the background (fire-and-forget:
// a persistence failure is logged, never surfaced).
//
// A ttl of zero always recomputes but still writes. Infrastructure
// faults on the hit path are returned as *StoreError; compute does not
// run after such a fault.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute Thunk[T]) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrNilCache
	}
	if compute == nil {
		return zero, ErrNilCompute
	}
	if ttl < 0 {
		return zero, ErrNegativeTTL
	}
	if err := store.ValidateKey(key); err != nil {
		return zero, err
	}

	if c.group == nil {
		return getOrCompute(ctx, c, key, ttl, compute)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return getOrCompute(ctx, c, key, ttl, compute)
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func getOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute Thunk[T]) (T, error) {
	var zero T

	ctx, span := c.tracer.Start(ctx, "memo.GetOrCompute",
		trace.WithAttributes(attribute.String("memo.key", key)))
	defer span.End()

	if err := c.store.EnsureNamespace(ctx, key); err != nil {
		return zero, &StoreError{Op: "ensure", Key: key, Err: err}
	}

	exists, err := c.store.Exists(ctx, key)
	if err != nil {
		return zero, &StoreError{Op: "probe", Key: key, Err: err}
	}

	if exists {
		age, err := c.store.Age(ctx, key)
		switch {
		case errors.Is(err, store.ErrNotExist):
			// Entry vanished between the probes; treat as absent.
			exists = false
		case err != nil:
			return zero, &StoreError{Op: "probe", Key: key, Err: err}
		}

		if exists && age < ttl {
			// Hit. A failure from here on is reported, not downgraded
			// to a miss: masking it could hide corruption.
			data, err := c.store.Read(ctx, key)
			if err != nil {
				return zero, &StoreError{Op: "read", Key: key, Err: err}
			}
			var v T
			if err := c.codec.Unmarshal(data, &v); err != nil {
				return zero, &StoreError{Op: "decode", Key: key, Err: err}
			}
			span.SetAttributes(attribute.Bool("memo.hit", true))
			c.metrics.hit(ctx, key)
			c.log.Debug("cache hit", zap.String("key", key), zap.Duration("age", age))
			return v, nil
		}
	}

	span.SetAttributes(attribute.Bool("memo.hit", false))
	c.metrics.miss(ctx, key)
	c.log.Debug("cache miss", zap.String("key", key))

	start := time.Now()
	v, err := compute(ctx)
	c.metrics.compute(ctx, key, time.Since(start))
	if err != nil {
		// Operation failure: pass through untouched, persist nothing.
		return zero, err
	}

	c.persist(ctx, key, v)
	return v, nil
}

// persist writes the success payload in a detached background task. The
// task survives cancellation of the triggering invocation, and its
// failure is observable only through the logger and metrics.
func (c *Cache) persist(ctx context.Context, key string, v any) {
	bg := context.WithoutCancel(ctx)
	c.writes.Add(1)
	go func() {
		defer c.writes.Done()

		data, err := c.codec.Marshal(v)
		if err != nil {
			c.metrics.writeFailure(bg, key)
			c.log.Warn("cache entry not persisted: encode failed",
				zap.String("key", key), zap.Error(err))
			return
		}
		if err := c.store.Write(bg, key, data); err != nil {
			c.metrics.writeFailure(bg, key)
			c.log.Warn("cache entry not persisted: write failed",
				zap.String("key", key), zap.Error(err))
		}
	}()
}
