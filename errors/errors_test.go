package errors

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
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
				Phase:  PhaseConvert,
				Kind:   KindIllegalSequence,
				From:   "SJIS",
				To:     "UTF-8",
				Offset: 12,
				Detail: "invalid lead byte",
			},
			contains: []string{"[convert]", "illegal_sequence", "SJIS", "UTF-8", "offset 12", "invalid lead byte"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseOpen,
				Kind:  KindUnknownEncoding,
			},
			contains: []string{"[open]", "unknown_encoding"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConvert,
				Kind:   KindUnknown,
				Detail: "conversion stalled",
				Cause:  errors.New("underlying signal"),
			},
			contains: []string{"[convert]", "unknown", "conversion stalled", "caused by", "underlying signal"},
		},
		{
			name: "source side only",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindIncompleteSequence,
				From:  "EUC-JP",
			},
			contains: []string{"[decode]", "incomplete_sequence", "from EUC-JP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindUnknown,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindIllegalSequence,
		From:  "SJIS",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseConvert, Kind: KindIllegalSequence}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindIllegalSequence}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseConvert, Kind: KindBufferTooSmall}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseConvert, Kind: KindIllegalSequence}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseConvert, KindIllegalSequence).
		From("SJIS").
		To("UTF-8").
		Offset(7).
		Value(byte(0xFF)).
		Cause(cause).
		Detail("invalid byte 0x%02X", 0xFF).
		Build()

	if err.Phase != PhaseConvert {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseConvert)
	}
	if err.Kind != KindIllegalSequence {
		t.Errorf("Kind = %v, want %v", err.Kind, KindIllegalSequence)
	}
	if err.From != "SJIS" {
		t.Errorf("From = %v, want 'SJIS'", err.From)
	}
	if err.To != "UTF-8" {
		t.Errorf("To = %v, want 'UTF-8'", err.To)
	}
	if err.Offset != 7 {
		t.Errorf("Offset = %v, want 7", err.Offset)
	}
	if err.Value != byte(0xFF) {
		t.Errorf("Value = %v, want 0xFF", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "invalid byte 0xFF" {
		t.Errorf("Detail = %v, want 'invalid byte 0xFF'", err.Detail)
	}
}

type stubRepertoireError byte

func (stubRepertoireError) Error() string { return "rune not supported" }

func (b stubRepertoireError) Replacement() byte { return byte(b) }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Kind("")},
		{"short dst", transform.ErrShortDst, KindBufferTooSmall},
		{"short src", transform.ErrShortSrc, KindIncompleteSequence},
		{"illegal sequence", ErrIllegalSequence, KindIllegalSequence},
		{"invalid utf8", encoding.ErrInvalidUTF8, KindIllegalSequence},
		{"repertoire", stubRepertoireError(0x1A), KindIllegalSequence},
		{"unknown", errors.New("something else"), KindUnknown},
		{"classified passthrough", &Error{Phase: PhaseOpen, Kind: KindUnknownEncoding}, KindUnknownEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestFromSignal(t *testing.T) {
	t.Run("wraps raw signals", func(t *testing.T) {
		tests := []struct {
			name string
			raw  error
			want Kind
		}{
			{"short dst", transform.ErrShortDst, KindBufferTooSmall},
			{"short src", transform.ErrShortSrc, KindIncompleteSequence},
			{"illegal sequence", ErrIllegalSequence, KindIllegalSequence},
			{"invalid utf8", encoding.ErrInvalidUTF8, KindIllegalSequence},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := FromSignal(PhaseConvert, "SJIS", "UTF-8", 4, tt.raw)
				if err.Kind != tt.want {
					t.Errorf("Kind = %v, want %v", err.Kind, tt.want)
				}
				if err.From != "SJIS" || err.To != "UTF-8" || err.Offset != 4 {
					t.Errorf("context = %q -> %q at %d, want SJIS -> UTF-8 at 4", err.From, err.To, err.Offset)
				}
				if !errors.Is(err, tt.raw) {
					t.Error("wrapped error should match the raw signal via errors.Is")
				}
			})
		}
	})

	t.Run("classified passthrough", func(t *testing.T) {
		orig := &Error{Phase: PhaseOpen, Kind: KindUnknownEncoding}
		err := FromSignal(PhaseConvert, "a", "b", 0, orig)
		if err != orig {
			t.Error("already classified error should pass through unchanged")
		}
	})

	t.Run("unknown keeps raw signal", func(t *testing.T) {
		raw := errors.New("errno 42")
		err := FromSignal(PhaseConvert, "a", "b", 0, raw)
		if err.Kind != KindUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknown)
		}
		if !errors.Is(err, raw) {
			t.Error("raw signal should be preserved in the cause chain")
		}
		if !containsSubstring(err.Error(), "errno 42") {
			t.Errorf("message %q should mention the raw signal", err.Error())
		}
	})
}

func TestIsKind(t *testing.T) {
	err := UnknownEncoding("NOT-A-REAL-ENCODING")
	if !IsKind(err, KindUnknownEncoding) {
		t.Error("IsKind should match the error's kind")
	}
	if IsKind(err, KindIllegalSequence) {
		t.Error("IsKind should not match a different kind")
	}
	if IsKind(nil, KindUnknownEncoding) {
		t.Error("IsKind(nil) should be false")
	}
	if IsKind(errors.New("plain"), KindUnknown) {
		t.Error("IsKind should not match a plain error")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("UnknownEncoding", func(t *testing.T) {
		err := UnknownEncoding("NOT-A-REAL-ENCODING")
		if err.Kind != KindUnknownEncoding {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknownEncoding)
		}
		if err.Phase != PhaseOpen {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseOpen)
		}
		if !containsSubstring(err.Detail, "NOT-A-REAL-ENCODING") {
			t.Errorf("Detail = %v, should contain the name", err.Detail)
		}
	})

	t.Run("InvalidName", func(t *testing.T) {
		err := InvalidName("UTF 8", "contains whitespace")
		if err.Kind != KindUnknownEncoding {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknownEncoding)
		}
		if !containsSubstring(err.Detail, "whitespace") {
			t.Errorf("Detail = %v, should contain the reason", err.Detail)
		}
	})

	t.Run("NilInput", func(t *testing.T) {
		err := NilInput(PhaseConvert)
		if err.Kind != KindNilInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilInput)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		err := Closed(PhaseConvert, "session")
		if err.Kind != KindClosed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindClosed)
		}
		if !containsSubstring(err.Detail, "session") {
			t.Errorf("Detail = %v, should name the resource", err.Detail)
		}
	})

	t.Run("IllegalSequence", func(t *testing.T) {
		err := IllegalSequence(PhaseConvert, "SJIS", "UTF-8", 2, ErrIllegalSequence)
		if err.Kind != KindIllegalSequence {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIllegalSequence)
		}
		if err.From != "SJIS" || err.To != "UTF-8" || err.Offset != 2 {
			t.Errorf("context = %q -> %q at %d, want SJIS -> UTF-8 at 2", err.From, err.To, err.Offset)
		}
		if !errors.Is(err, ErrIllegalSequence) {
			t.Error("cause should be reachable via errors.Is")
		}
	})

	t.Run("IncompleteSequence", func(t *testing.T) {
		err := IncompleteSequence(PhaseConvert, "SJIS", "UTF-8", 9, nil)
		if err.Kind != KindIncompleteSequence {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIncompleteSequence)
		}
		if err.Offset != 9 {
			t.Errorf("Offset = %v, want 9", err.Offset)
		}
	})

	t.Run("BufferTooSmall", func(t *testing.T) {
		err := BufferTooSmall(PhaseConvert, "SJIS", "UTF-8", 4, transform.ErrShortDst)
		if err.Kind != KindBufferTooSmall {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBufferTooSmall)
		}
		if !errors.Is(err, transform.ErrShortDst) {
			t.Error("cause should be reachable via errors.Is")
		}
	})

	t.Run("IllegalScalar", func(t *testing.T) {
		err := IllegalScalar(0xD800, 3)
		if err.Kind != KindIllegalSequence {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIllegalSequence)
		}
		if err.Phase != PhaseDecode {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
		}
		if !containsSubstring(err.Detail, "D800") {
			t.Errorf("Detail = %v, should contain the unit", err.Detail)
		}
	})

	t.Run("TruncatedUnits", func(t *testing.T) {
		err := TruncatedUnits(7)
		if err.Kind != KindIncompleteSequence {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIncompleteSequence)
		}
		if !containsSubstring(err.Detail, "7") {
			t.Errorf("Detail = %v, should contain the length", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseConvert, KindUnknown, cause, "conversion stalled")
		if err.Kind != KindUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknown)
		}
		if !errors.Is(err, cause) {
			t.Error("cause should be reachable via errors.Is")
		}
	})
}

func containsSubstring(s, substr string) bool {
	return strings.Contains(s, substr)
}
