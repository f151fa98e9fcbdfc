package memo

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestStoreError_Unwrap(t *testing.T) {
	underlying := os.ErrPermission
	err := &StoreError{Op: "read", Key: "k", Err: underlying}

	if !errors.Is(err, os.ErrPermission) {
		t.Error("errors.Is() did not reach the underlying error")
	}

	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatal("errors.As() failed for *StoreError")
	}
	if se.Op != "read" || se.Key != "k" {
		t.Errorf("StoreError = %+v, want Op=read Key=k", se)
	}
}

func TestStoreError_Message(t *testing.T) {
	err := &StoreError{Op: "decode", Key: "weather/10", Err: errors.New("bad json")}

	want := `memo: decode "weather/10": bad json`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"store error", &StoreError{Op: "probe", Key: "k", Err: errors.New("x")}, true},
		{"wrapped store error", fmt.Errorf("outer: %w", &StoreError{Op: "read", Key: "k", Err: errors.New("x")}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStoreError(tt.err); got != tt.want {
				t.Errorf("IsStoreError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{ErrNilCache, ErrNilCompute, ErrNegativeTTL}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d and %d are not distinct", i, j)
			}
		}
	}
}
