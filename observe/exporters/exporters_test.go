package exporters

import (
	"context"
	"testing"
)

func TestNewSpanExporter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		arg     string
		wantErr bool
	}{
		{"stdout", "stdout", false},
		{"none", "none", false},
		{"empty means none", "", false},
		{"otlp without endpoint", "otlp", true},
		{"unknown", "smoke-signal", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
			t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

			exp, err := NewSpanExporter(ctx, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSpanExporter(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && exp == nil {
				t.Errorf("NewSpanExporter(%q) = nil exporter", tt.arg)
			}
		})
	}
}

func TestNewMetricReader(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		arg     string
		wantErr bool
	}{
		{"stdout", "stdout", false},
		{"prometheus", "prometheus", false},
		{"none", "none", false},
		{"empty means none", "", false},
		{"otlp without endpoint", "otlp", true},
		{"unknown", "smoke-signal", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
			t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

			reader, err := NewMetricReader(ctx, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMetricReader(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && reader == nil {
				t.Errorf("NewMetricReader(%q) = nil reader", tt.arg)
			}
		})
	}
}
