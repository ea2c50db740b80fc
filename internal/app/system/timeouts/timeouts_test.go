package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigureIgnoresZero(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Slot: 9 * time.Second})

	if got := Slot(); got != 9*time.Second {
		t.Errorf("Slot: got %v, want %v", got, 9*time.Second)
	}
	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping: got %v, want %v", got, DefaultPing)
	}
	if got := Bulk(); got != DefaultBulk {
		t.Errorf("Bulk: got %v, want %v", got, DefaultBulk)
	}
}

func TestReset(t *testing.T) {
	Configure(Config{Ping: time.Minute, Upload: time.Minute})
	Reset()

	want := Config{Ping: DefaultPing, Slot: DefaultSlot, Upload: DefaultUpload, Bulk: DefaultBulk}
	if got := Current(); got != want {
		t.Errorf("Current: got %+v, want %+v", got, want)
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test op")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err: got %v, want %v", ctx.Err(), context.DeadlineExceeded)
	}
}
