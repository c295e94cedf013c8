package biometric_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"didauth/internal/services/biometric"
)

func TestFunc(t *testing.T) {
	p := biometric.Func(func(context.Context) (string, error) { return "bio-secret", nil })
	pw, err := p.RequestPassword(context.Background())
	if err != nil || pw != "bio-secret" {
		t.Fatalf("got %q, %v", pw, err)
	}

	empty := biometric.Func(func(context.Context) (string, error) { return "", nil })
	if _, err := empty.RequestPassword(context.Background()); !errors.Is(err, biometric.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestUnavailable(t *testing.T) {
	if _, err := (biometric.Unavailable{}).RequestPassword(context.Background()); !errors.Is(err, biometric.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestPrompt_Result(t *testing.T) {
	p := biometric.Prompt{Start: func() <-chan biometric.Result {
		ch := make(chan biometric.Result, 1)
		ch <- biometric.Result{Password: "pw"}
		return ch
	}}
	pw, err := p.RequestPassword(context.Background())
	if err != nil || pw != "pw" {
		t.Fatalf("got %q, %v", pw, err)
	}
}

func TestPrompt_UserCancel(t *testing.T) {
	p := biometric.Prompt{Start: func() <-chan biometric.Result {
		ch := make(chan biometric.Result)
		close(ch)
		return ch
	}}
	if _, err := p.RequestPassword(context.Background()); !errors.Is(err, biometric.ErrCanceled) {
		t.Fatalf("want ErrCanceled, got %v", err)
	}
}

func TestPrompt_ContextCancel(t *testing.T) {
	p := biometric.Prompt{Start: func() <-chan biometric.Result {
		return make(chan biometric.Result) // never answers
	}}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.RequestPassword(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}

func TestPrompt_LateResultDoesNotBlockSensor(t *testing.T) {
	ch := make(chan biometric.Result)
	p := biometric.Prompt{Start: func() <-chan biometric.Result { return ch }}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.RequestPassword(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want canceled, got %v", err)
	}

	// The sensor answers after the caller gave up on an unbuffered channel.
	sent := make(chan struct{})
	go func() {
		ch <- biometric.Result{Password: "late"}
		close(sent)
	}()
	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("late sensor result blocked forever")
	}
}

func TestDeviceFallback(t *testing.T) {
	at := time.UnixMilli(42)
	d := biometric.DeviceFallback{DeviceID: "dev", Now: func() time.Time { return at }}
	a, err := d.RequestPassword(context.Background())
	if err != nil {
		t.Fatalf("RequestPassword: %v", err)
	}
	b, _ := d.RequestPassword(context.Background())
	if a != b || len(a) != 8 {
		t.Fatalf("unexpected fallback passwords %q %q", a, b)
	}

	if _, err := (biometric.DeviceFallback{}).RequestPassword(context.Background()); !errors.Is(err, biometric.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable without device id, got %v", err)
	}
}
