package memo

import (
	"go.opentelemetry.io/otel/metric"
	mnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tnoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/kestrelops/memocache/codec"
	"github.com/kestrelops/memocache/store"
)

// Option configures a Cache at construction time.
type Option func(*options)

type options struct {
	store          store.Store
	codec          codec.Codec
	logger         *zap.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	singleFlight   bool
}

func defaultOptions() *options {
	return &options{
		store:          store.NewFileStore(DefaultRoot()),
		codec:          codec.JSON{},
		logger:         zap.NewNop(),
		meterProvider:  mnoop.NewMeterProvider(),
		tracerProvider: tnoop.NewTracerProvider(),
	}
}

// WithStore sets the durable store holding entries. Default: a FileStore
// rooted at DefaultRoot().
func WithStore(s store.Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// WithCodec sets the payload serialization format. Default: codec.JSON.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger sets the logger used for operationally-observable events,
// in particular background persistence failures. Default: a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMeterProvider enables hit/miss/persistence metrics. Default: noop.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// WithTracerProvider enables a span per invocation. Default: noop.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

// WithSingleFlight collapses concurrent invocations of the same key into
// one compute. This changes observable behavior: without it, concurrent
// misses on one key each run the operation and race on the write, with
// the last write winning. Off by default to keep the reference
// semantics.
func WithSingleFlight() Option {
	return func(o *options) { o.singleFlight = true }
}
