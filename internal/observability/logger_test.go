package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "info level", level: "info"},
		{name: "debug level", level: "debug"},
		{name: "uppercase level", level: "WARN"},
		{name: "empty defaults to info", level: ""},
		{name: "invalid level", level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, err := NewLogger(tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewLogger() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() unexpected error = %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger() returned nil logger")
			}
			_ = logger.Sync()
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-1")

	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("RequestIDFromContext() ok = false, want true")
	}
	if got != "req-1" {
		t.Fatalf("RequestIDFromContext() = %q, want req-1", got)
	}

	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Fatal("RequestIDFromContext() on empty context ok = true, want false")
	}
}

func TestWithContextLogger(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()

	if got := WithContextLogger(logger, context.Background()); got != logger {
		t.Fatal("WithContextLogger() without request id should return the original logger")
	}

	ctx := WithRequestID(context.Background(), "req-2")
	if got := WithContextLogger(logger, ctx); got == logger {
		t.Fatal("WithContextLogger() with request id should return a derived logger")
	}
}
