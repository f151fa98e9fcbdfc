// Package observe bootstraps telemetry for cache deployments: an
// OpenTelemetry tracer and meter provider with pluggable exporters, and
// a zap logger. The providers plug straight into memo.WithTracerProvider,
// memo.WithMeterProvider, and memo.WithLogger.
//
// The cache core works without any of this; everything here defaults to
// disabled.
package observe
