package logging

import "testing"

func TestNewStderrDoesNotCloseStderr(t *testing.T) {
	l := NewStderr()
	if l.closer != nil {
		t.Fatalf("expected NewStderr to carry no closer, so Close never touches os.Stderr")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("expected Close on a stderr logger to be a no-op, got %v", err)
	}
}

func TestNewWiresUpWriterClose(t *testing.T) {
	w := &closeTrackingWriter{}
	l := New(w)
	if err := l.Close(); err != nil {
		t.Fatalf("unexpected error closing: %v", err)
	}
	if !w.closed {
		t.Fatalf("expected New to close a writer that implements io.Closer")
	}
}

type closeTrackingWriter struct {
	closed bool
}

func (w *closeTrackingWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w *closeTrackingWriter) Close() error                { w.closed = true; return nil }
