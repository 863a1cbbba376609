package engine

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/transform"

	"github.com/recoderlab/recoder/errors"
)

// Handle holds a codec bound to a (from, to) encoding pair. It carries the
// converter's shift state between steps and must be used by a single caller
// at a time. Independent handles are fully independent.
type Handle struct {
	from   *Entry
	to     *Entry
	tr     transform.Transformer
	sub    *substitutingEncoder
	closed bool
}

// Open resolves both encoding names and builds the conversion pipeline.
// It fails with an unknown_encoding error for empty names, names containing
// whitespace, or names the registry does not recognize. No partially
// constructed handle is ever returned.
func Open(from, to string) (*Handle, error) {
	fromEntry, err := resolve(from)
	if err != nil {
		return nil, err
	}
	toEntry, err := resolve(to)
	if err != nil {
		return nil, err
	}

	h := &Handle{from: fromEntry, to: toEntry}
	h.tr, h.sub = newPipeline(fromEntry, toEntry)

	Logger().Debug("codec open",
		zap.String("from", fromEntry.Name),
		zap.String("to", toEntry.Name))
	return h, nil
}

func resolve(name string) (*Entry, error) {
	if name == "" {
		return nil, errors.InvalidName(name, "is empty")
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return nil, errors.InvalidName(name, "contains whitespace")
	}
	e, ok := lookup(name)
	if !ok {
		return nil, errors.UnknownEncoding(name)
	}
	return e, nil
}

// From returns the canonical name of the source encoding.
func (h *Handle) From() string {
	return h.from.Name
}

// To returns the canonical name of the target encoding.
func (h *Handle) To() string {
	return h.to.Name
}

// Step performs one bounded transcoding step: it consumes bytes from src,
// writes converted bytes to dst, and reports how many bytes of each were
// used plus the number of non-reversible substitutions performed. Bytes
// written to dst are valid even when err is non-nil. Conversion failures
// are reported as the codec's raw signals (transform.ErrShortDst,
// transform.ErrShortSrc, errors.ErrIllegalSequence, ...); callers classify
// them. atEOF marks src as the final bytes of the stream, which lets
// stateful target encodings emit their closing shift sequences.
func (h *Handle) Step(dst, src []byte, atEOF bool) (nDst, nSrc, nonRev int, err error) {
	if h.closed {
		return 0, 0, 0, errors.Closed(errors.PhaseConvert, "codec handle")
	}
	if h.sub != nil {
		h.sub.count = 0
	}
	nDst, nSrc, err = h.tr.Transform(dst, src, atEOF)
	if h.sub != nil {
		nonRev = h.sub.count
	}
	return nDst, nSrc, nonRev, err
}

// Reset returns the converter to its initial shift state. Output already
// produced is unaffected. Reset on a closed handle is a no-op.
func (h *Handle) Reset() {
	if h.closed {
		return
	}
	h.tr.Reset()
}

// Close releases the handle. It is idempotent; steps after Close fail with
// a closed error.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	Logger().Debug("codec closed",
		zap.String("from", h.from.Name),
		zap.String("to", h.to.Name))
	return nil
}
