package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skingford/book-web/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: time.Second,
		RetryInterval:  10 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    10 * time.Millisecond,
		WarnThreshold:  3,
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{"valid", func(*ConnectOptions) {}, false},
		{"empty addr", func(o *ConnectOptions) { o.Addr = "" }, true},
		{"zero connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }, true},
		{"zero retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }, true},
		{"zero max wait", func(o *ConnectOptions) { o.MaxWait = 0 }, true},
		{"zero ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }, true},
		{"negative warn threshold", func(o *ConnectOptions) { o.WarnThreshold = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := ConnectOptions{}.Validate()
	if err == nil {
		t.Fatal("Validate() on zero options should fail")
	}
	for _, want := range []string{"address", "ConnectTimeout", "RetryInterval", "MaxWait", "PingTimeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %s", err, want)
		}
	}
}

func TestBackoff(t *testing.T) {
	b := backoff{wait: 2 * time.Second, ceiling: 10 * time.Second}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second}
	for i, w := range want {
		if got := b.next(); got != w {
			t.Errorf("next() #%d = %v, want %v", i, got, w)
		}
	}

	capped := backoff{wait: time.Minute, ceiling: time.Second}
	if got := capped.next(); got != time.Second {
		t.Errorf("next() above ceiling = %v, want %v", got, time.Second)
	}
}

func TestTimeLeft(t *testing.T) {
	if got := timeLeft(context.Background()); got != 0 {
		t.Errorf("timeLeft without deadline = %v, want 0", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if got := timeLeft(ctx); got <= 0 || got > time.Minute {
		t.Errorf("timeLeft = %v, want within (0, 1m]", got)
	}
}

func TestNewGivesUpWhenContextEnds(t *testing.T) {
	opts := validOptions()
	opts.Addr = "127.0.0.1:1" // nothing listens there
	opts.DialTimeout = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	client, err := New(ctx, opts, logger.Nop())
	if err == nil {
		t.Fatal("expected error connecting to a closed port")
	}
	if client != nil {
		t.Error("client should be nil on failure")
	}
	if elapsed := time.Since(start); elapsed > 900*time.Millisecond {
		t.Errorf("New() should stop with ctx, took %v", elapsed)
	}
}
