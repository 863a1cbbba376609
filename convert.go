package recoder

import (
	"io"

	"golang.org/x/text/transform"

	"github.com/recoderlab/recoder/engine"
)

// Convert transcodes src from one named encoding to another in a single
// call, returning the converted bytes and the number of non-reversible
// substitutions performed. The stream is flushed at the end, so stateful
// target encodings carry their closing shift sequence. Bytes produced
// before a failure are returned alongside the error.
func Convert(from, to string, src []byte) ([]byte, int, error) {
	s, err := NewSession(from, to)
	if err != nil {
		return nil, 0, err
	}
	defer s.Close()

	out, nonRev, err := s.Convert(nil, NewCursor(src), Unbounded)
	if err != nil {
		return out, nonRev, err
	}
	out, err = s.Flush(out)
	return out, nonRev, err
}

// ConvertString is Convert for string input and output.
func ConvertString(from, to, src string) (string, int, error) {
	out, nonRev, err := Convert(from, to, []byte(src))
	return string(out), nonRev, err
}

// EncodeString converts UTF-8 text into the named target encoding.
func EncodeString(text, to string) ([]byte, int, error) {
	return Convert("UTF-8", to, []byte(text))
}

// transformer adapts a codec handle to the transform.Transformer interface
// for streaming readers and writers. Substitution counts are not surfaced;
// conversion failures come through as the codec's raw signals, which
// errors.Classify maps onto the error taxonomy.
type transformer struct {
	h *engine.Handle
}

func (t transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nDst, nSrc, _, err = t.h.Step(dst, src, atEOF)
	return nDst, nSrc, err
}

func (t transformer) Reset() {
	t.h.Reset()
}

// NewReader returns a reader that converts r from one named encoding to
// another as it is read. An empty to selects UTF-8.
func NewReader(r io.Reader, from, to string) (io.Reader, error) {
	if to == "" {
		to = "UTF-8"
	}
	h, err := engine.Open(from, to)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, transformer{h}), nil
}

// NewWriter returns a writer that converts written bytes from one named
// encoding to another before forwarding them to w. An empty to selects
// UTF-8. Close flushes the closing shift sequence of stateful target
// encodings; it does not close w.
func NewWriter(w io.Writer, from, to string) (io.WriteCloser, error) {
	if to == "" {
		to = "UTF-8"
	}
	h, err := engine.Open(from, to)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, transformer{h}), nil
}
