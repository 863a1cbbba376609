package recoder

import (
	"go.uber.org/zap"
	"golang.org/x/text/transform"

	"github.com/recoderlab/recoder/engine"
	"github.com/recoderlab/recoder/errors"
)

const (
	// DefaultMaxOutput is the per-call output cap applied when Convert is
	// given a maxOutput of zero.
	DefaultMaxOutput = 1024

	// Unbounded removes the per-call output cap: Convert keeps stepping
	// with a fixed working buffer until the input is fully converted.
	Unbounded = -1
)

// drainChunkSize is the working-buffer size for unbounded conversion.
const drainChunkSize = 2048

// Session is a stateful converter bound to one (from, to) encoding pair.
// It carries the converter's shift state between Convert calls, so one
// session converts one logical stream at a time; Reset starts a new stream.
// A session must be used by a single caller at a time. Independent sessions
// are fully independent.
type Session struct {
	handle *engine.Handle
	from   string
	to     string

	closed bool
	// pending is set while converted bytes are still buffered inside the
	// pipeline after a buffer_too_small failure. It lets Convert accept a
	// fully consumed cursor for the follow-up calls that drain them.
	pending bool
}

// NewSession opens a conversion session from one named encoding to another.
// An empty to selects UTF-8. Empty names, names containing whitespace, and
// names the catalog does not recognize fail with an unknown_encoding error;
// no partially constructed session is ever returned.
func NewSession(from, to string) (*Session, error) {
	if to == "" {
		to = "UTF-8"
	}
	h, err := engine.Open(from, to)
	if err != nil {
		return nil, err
	}
	s := &Session{handle: h, from: h.From(), to: h.To()}
	Logger().Debug("session open",
		zap.String("from", s.from),
		zap.String("to", s.to))
	return s, nil
}

// From returns the canonical name of the source encoding.
func (s *Session) From() string { return s.from }

// To returns the canonical name of the target encoding.
func (s *Session) To() string { return s.to }

// Convert transcodes bytes from the cursor, appending converted output to
// dst. It returns the grown slice and the number of non-reversible
// substitutions performed. Bytes produced before a failure are always
// appended first; the cursor stays advanced past everything consumed, so a
// failed call can be resumed.
//
// maxOutput caps how much output a single call may produce. Zero selects
// DefaultMaxOutput. When the cap fills with input left over, Convert fails
// with a buffer_too_small error and the caller decides whether to retry.
// Unbounded (or any negative value) removes the cap: the cursor is drained
// in drainChunkSize steps and buffer_too_small is absorbed internally, so
// the only failures are terminal ones.
//
// A nil cursor, or a cursor with nothing left while no output is pending
// inside the pipeline, fails with a nil_input error before any conversion
// is attempted.
func (s *Session) Convert(dst []byte, in *Cursor, maxOutput int) ([]byte, int, error) {
	if s.closed {
		return dst, 0, errors.Closed(errors.PhaseConvert, "session")
	}
	if in == nil || (in.Remaining() == 0 && !s.pending) {
		return dst, 0, errors.NilInput(errors.PhaseConvert)
	}
	if maxOutput == 0 {
		maxOutput = DefaultMaxOutput
	}
	if maxOutput > 0 {
		return s.step(dst, in, make([]byte, maxOutput))
	}

	work := make([]byte, drainChunkSize)
	total := 0
	for {
		beforeIn := in.Remaining()
		beforeOut := len(dst)
		out, n, err := s.step(dst, in, work)
		dst = out
		total += n
		if err == nil {
			return dst, total, nil
		}
		if !errors.IsKind(err, errors.KindBufferTooSmall) {
			return dst, total, err
		}
		if in.Remaining() == beforeIn && len(dst) == beforeOut {
			return dst, total, errors.Wrap(errors.PhaseConvert, errors.KindUnknown, err,
				"conversion stalled without progress")
		}
	}
}

// step runs one bounded conversion step through work. Whatever the step
// produced is appended to dst and the cursor advanced before the outcome is
// inspected, so partial output survives failures.
func (s *Session) step(dst []byte, in *Cursor, work []byte) ([]byte, int, error) {
	nDst, nSrc, nonRev, err := s.handle.Step(work, in.rest(), false)
	dst = append(dst, work[:nDst]...)
	in.advance(nSrc)
	s.pending = err == transform.ErrShortDst
	if err != nil {
		return dst, nonRev, errors.FromSignal(errors.PhaseConvert, s.from, s.to, in.Offset(), err)
	}
	return dst, nonRev, nil
}

// Flush marks the end of the input stream, appending to dst anything the
// converter still holds: output buffered by earlier calls and the closing
// shift sequence of stateful target encodings such as ISO-2022-JP. The
// session stays open; call Reset before converting another stream.
func (s *Session) Flush(dst []byte) ([]byte, error) {
	if s.closed {
		return dst, errors.Closed(errors.PhaseConvert, "session")
	}
	work := make([]byte, drainChunkSize)
	for {
		nDst, _, _, err := s.handle.Step(work, nil, true)
		dst = append(dst, work[:nDst]...)
		if err == nil {
			s.pending = false
			return dst, nil
		}
		if err != transform.ErrShortDst {
			return dst, errors.FromSignal(errors.PhaseConvert, s.from, s.to, 0, err)
		}
	}
}

// Reset returns the converter to its initial shift state and discards any
// output still buffered inside the pipeline. Output already returned to the
// caller is unaffected. Reset on a closed session is a no-op.
func (s *Session) Reset() {
	if s.closed {
		return
	}
	s.handle.Reset()
	s.pending = false
}

// Close releases the session. It is idempotent; conversions after Close
// fail with a closed error. Closing while converted output is still
// buffered inside the pipeline logs a warning, since those bytes are lost.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.pending {
		Logger().Warn("session closed with converted output still buffered",
			zap.String("from", s.from),
			zap.String("to", s.to))
	}
	err := s.handle.Close()
	Logger().Debug("session closed",
		zap.String("from", s.from),
		zap.String("to", s.to))
	return err
}
