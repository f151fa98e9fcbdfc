package memo

import (
	"context"
	"time"
)

// Thunk is the two-variant outcome shape: a success payload or a
// failure. Only the success payload must be serializable under the
// cache's codec; failures are never persisted.
type Thunk[T any] func(ctx context.Context) (T, error)

// ValueThunk is the bare-value shape for operations that cannot fail on
// their own. The wrappers lift it onto Thunk, so cache infrastructure
// faults remain reportable.
type ValueThunk[T any] func(ctx context.Context) T

func liftValue[T any](fn ValueThunk[T]) Thunk[T] {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context) (T, error) {
		return fn(ctx), nil
	}
}

// Wrap binds a fallible operation to a fixed key and TTL. The returned
// thunk runs the get-or-compute protocol on every call; call sites
// otherwise stay unchanged.
func Wrap[T any](c *Cache, key string, ttl time.Duration, fn Thunk[T]) Thunk[T] {
	return func(ctx context.Context) (T, error) {
		return GetOrCompute(ctx, c, key, ttl, fn)
	}
}

// WrapValue is Wrap for operations that return a bare value.
func WrapValue[T any](c *Cache, key string, ttl time.Duration, fn ValueThunk[T]) Thunk[T] {
	return Wrap(c, key, ttl, liftValue(fn))
}

// Wrap1 binds a one-argument fallible operation. The entry key is
// derived per call with ArgKey, so distinct arguments resolve to
// distinct entries: op "weather" with argument 10 caches under
// "weather/10".
func Wrap1[A, T any](c *Cache, op string, ttl time.Duration, fn func(ctx context.Context, arg A) (T, error)) func(ctx context.Context, arg A) (T, error) {
	return func(ctx context.Context, arg A) (T, error) {
		var compute Thunk[T]
		if fn != nil {
			compute = func(ctx context.Context) (T, error) {
				return fn(ctx, arg)
			}
		}
		return GetOrCompute(ctx, c, ArgKey(op, arg), ttl, compute)
	}
}

// WrapValue1 is Wrap1 for operations that return a bare value.
func WrapValue1[A, T any](c *Cache, op string, ttl time.Duration, fn func(ctx context.Context, arg A) T) func(ctx context.Context, arg A) (T, error) {
	if fn == nil {
		return Wrap1[A, T](c, op, ttl, nil)
	}
	return Wrap1(c, op, ttl, func(ctx context.Context, arg A) (T, error) {
		return fn(ctx, arg), nil
	})
}
