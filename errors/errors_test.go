package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseSeek,
				Kind:   KindInvalidSeek,
				Stream: "fixed",
				Detail: "offset 70 outside [0, 64]",
			},
			contains: []string{"[seek]", "invalid_seek", "fixed stream", "offset 70"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRead,
				Kind:  KindNotReadable,
			},
			contains: []string{"[read]", "not_readable"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseGrow,
				Kind:   KindOutOfMemory,
				Detail: "limit reached",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[grow]", "out_of_memory", "limit reached", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseWrite,
		Kind:  KindOutOfMemory,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseSeek,
		Kind:   KindInvalidSeek,
		Stream: "fixed",
	}

	if !err.Is(&Error{Phase: PhaseSeek, Kind: KindInvalidSeek}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRead, Kind: KindInvalidSeek}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseSeek, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrInvalidSeek) {
		t.Error("errors.Is should match the kind sentinel")
	}
	if errors.Is(err, ErrNotReadable) {
		t.Error("errors.Is should not match another kind sentinel")
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !errors.Is(wrapped, ErrInvalidSeek) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestKindOf(t *testing.T) {
	if k, ok := KindOf(fmt.Errorf("outer: %w", NotWritable("fixed"))); !ok || k != KindNotWritable {
		t.Errorf("KindOf = %v, %v; want %v, true", k, ok, KindNotWritable)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf should not classify plain errors")
	}
	if _, ok := KindOf(nil); ok {
		t.Error("KindOf(nil) should be false")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseGrow, KindOutOfMemory).
		Stream("growable").
		Value(402).
		Cause(cause).
		Detail("need %d bytes, limit %d", 402, 256).
		Build()

	if err.Phase != PhaseGrow {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseGrow)
	}
	if err.Kind != KindOutOfMemory {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfMemory)
	}
	if err.Stream != "growable" {
		t.Errorf("Stream = %v, want 'growable'", err.Stream)
	}
	if err.Value != 402 {
		t.Errorf("Value = %v, want 402", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "need 402 bytes, limit 256" {
		t.Errorf("Detail = %v, want 'need 402 bytes, limit 256'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		kind  Kind
		phase Phase
	}{
		{"InvalidArgument", InvalidArgument(PhaseOpen, "fixed", "nil buffer"), KindInvalidArgument, PhaseOpen},
		{"NotReadable", NotReadable("fixed"), KindNotReadable, PhaseRead},
		{"NotWritable", NotWritable("fixed"), KindNotWritable, PhaseWrite},
		{"InvalidSeek", InvalidSeek("fixed", -1, 0, 64), KindInvalidSeek, PhaseSeek},
		{"OutOfMemory", OutOfMemory(PhaseGrow, "growable", 1024, nil), KindOutOfMemory, PhaseGrow},
		{"Unsupported", Unsupported(PhaseSeek, "seek slot not bound"), KindUnsupported, PhaseSeek},
		{"UseAfterClose", UseAfterClose(PhaseClose, ""), KindUseAfterClose, PhaseClose},
		{"OutOfBounds", OutOfBounds(PhaseOpen, 65530, 16, 65536), KindOutOfBounds, PhaseOpen},
		{"Wrap", Wrap(PhaseWrite, KindCapacityExhausted, errors.New("short"), "buffer exhausted"), KindCapacityExhausted, PhaseWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
		})
	}

	t.Run("OutOfMemory detail", func(t *testing.T) {
		err := OutOfMemory(PhaseGrow, "growable", 1024, nil)
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
		if err.Value != 1024 {
			t.Errorf("Value = %v, want 1024", err.Value)
		}
	})

	t.Run("InvalidSeek value", func(t *testing.T) {
		err := InvalidSeek("fixed", 70, 0, 64)
		if err.Value != int64(70) {
			t.Errorf("Value = %v, want 70", err.Value)
		}
	})
}
