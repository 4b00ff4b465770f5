package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/boardcreator/pkg/observability"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "BOARD"); err != nil || ok {
		t.Fatalf("Get on empty store = (%v, %v), want miss", ok, err)
	}

	if err := s.Set(ctx, "BOARD", []byte(`{"width":30}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := s.Get(ctx, "BOARD")
	if err != nil || !ok || string(data) != `{"width":30}` {
		t.Fatalf("Get = (%s, %v, %v)", data, ok, err)
	}

	if err := s.Set(ctx, "BOARD", []byte(`{"width":4}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, _, _ = s.Get(ctx, "BOARD")
	if string(data) != `{"width":4}` {
		t.Errorf("after overwrite Get = %s", data)
	}

	if err := s.Delete(ctx, "BOARD"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "BOARD"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "BOARD"); ok {
		t.Error("key still present after Delete")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	ctx := context.Background()
	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf)
	buf[0] = 'x'
	got, _, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Set should copy its input, got %s", got)
	}

	_ = s.Set(ctx, "a", nil)
	if keys := s.Keys(); !slices.Equal(keys, []string{"a", "k"}) {
		t.Errorf("Keys() = %v", keys)
	}

	_ = s.Close()
	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
	if err := s.Set(ctx, "k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close error = %v, want ErrClosed", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if s.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", s.Dir(), dir)
	}
	exerciseStore(t, s)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, _ := NewFileStore(dir)
	if err := a.Set(ctx, "weird/key with spaces", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	b, _ := NewFileStore(dir)
	got, ok, err := b.Get(ctx, "weird/key with spaces")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("second instance Get = (%s, %v, %v)", got, ok, err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestScopedStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	a := Scope(inner, "ws:a:")
	b := Scope(inner, "ws:b:")

	exerciseStore(t, a)

	_ = a.Set(ctx, "FILE_NAME", []byte(`"one"`))
	_ = b.Set(ctx, "FILE_NAME", []byte(`"two"`))

	got, _, _ := a.Get(ctx, "FILE_NAME")
	if string(got) != `"one"` {
		t.Errorf("scope a = %s", got)
	}
	if keys := inner.Keys(); !slices.Equal(keys, []string{"ws:a:FILE_NAME", "ws:b:FILE_NAME"}) {
		t.Errorf("inner keys = %v", keys)
	}

	_ = a.Close()
	if _, _, err := inner.Get(ctx, "ws:b:FILE_NAME"); err != nil {
		t.Errorf("closing a scope closed the inner store: %v", err)
	}
	if a.Prefix() != "ws:a:" {
		t.Errorf("Prefix() = %s", a.Prefix())
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		failures  int
		retryable bool
		wantCalls int
		wantErr   error
	}{
		{"success first try", 3, 0, true, 1, nil},
		{"non-retryable stops", 3, 5, false, 1, ErrClosed},
		{"recovers on last attempt", 3, 2, true, 3, nil},
		{"exhausted", 3, 5, true, 3, ErrUnavailable},
		{"single attempt", 1, 5, true, 1, ErrUnavailable},
		{"zero attempts runs once", 0, 5, true, 1, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.retryable {
					return Retryable(ErrUnavailable)
				}
				return ErrClosed
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil || tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled || calls != 1 {
		t.Errorf("err = %v after %d calls, want context.Canceled after 1", err, calls)
	}
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return ErrClosed
	})
	if err != ErrClosed || calls != 1 {
		t.Errorf("err = %v after %d calls", err, calls)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) || err.Error() != ErrUnavailable.Error() {
		t.Errorf("Retryable wrapping broken: %v", err)
	}
	if IsRetryable(ErrUnavailable) {
		t.Error("unwrapped error should not be retryable")
	}
}

type recordingHooks struct {
	observability.NoopStorageHooks
	reads, writes, deletes []string
}

func (h *recordingHooks) OnRead(_ context.Context, key string, hit bool) {
	if hit {
		key += "+"
	}
	h.reads = append(h.reads, key)
}
func (h *recordingHooks) OnWrite(_ context.Context, key string, _ int) { h.writes = append(h.writes, key) }
func (h *recordingHooks) OnDelete(_ context.Context, key string)      { h.deletes = append(h.deletes, key) }

func TestObservedStore(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetStorageHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := Observe(NewMemoryStore())
	_, _, _ = s.Get(ctx, "A")
	_ = s.Set(ctx, "A", []byte("1"))
	_, _, _ = s.Get(ctx, "A")
	_ = s.Delete(ctx, "A")

	if !slices.Equal(hooks.reads, []string{"A", "A+"}) {
		t.Errorf("reads = %v", hooks.reads)
	}
	if !slices.Equal(hooks.writes, []string{"A"}) || !slices.Equal(hooks.deletes, []string{"A"}) {
		t.Errorf("writes = %v, deletes = %v", hooks.writes, hooks.deletes)
	}
}
