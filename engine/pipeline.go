package engine

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/recoderlab/recoder/errors"
)

// newPipeline builds the transform chain for a (from, to) pair. The source
// side produces validated UTF-8: UTF-8 input runs through the strict
// validator, anything else through the encoding's decoder followed by a
// filter that turns the decoder's replacement runes into a hard failure.
// The target side encodes out of UTF-8, substituting unsupported runes and
// counting the substitutions. Both sides are skipped when they would be
// identity transforms.
func newPipeline(from, to *Entry) (transform.Transformer, *substitutingEncoder) {
	var links []transform.Transformer
	if from.isUTF8() {
		links = append(links, encoding.UTF8Validator)
	} else {
		links = append(links, from.enc.NewDecoder(), strictFilter{})
	}

	var sub *substitutingEncoder
	if !to.isUTF8() {
		sub = &substitutingEncoder{enc: to.enc.NewEncoder()}
		links = append(links, sub)
	}

	if len(links) == 1 {
		return links[0], sub
	}
	return transform.Chain(links...), sub
}

// strictFilter passes decoder output through unchanged and fails on the
// replacement rune U+FFFD, which decoders emit in place of bytes they
// cannot map. This is exact for source encodings that cannot themselves
// represent U+FFFD; for UTF-16 and UTF-32 sources a literal replacement
// rune in the input is also rejected.
type strictFilter struct {
	transform.NopResetter
}

func (strictFilter) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError {
			if size == 1 {
				if !atEOF && !utf8.FullRune(src[nSrc:]) {
					return nDst, nSrc, transform.ErrShortSrc
				}
				return nDst, nSrc, errors.ErrIllegalSequence
			}
			// A full three-byte U+FFFD marks input the decoder could
			// not map.
			return nDst, nSrc, errors.ErrIllegalSequence
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}

// substitutingEncoder wraps a target encoder so a rune outside the target
// repertoire becomes the encoder's suggested replacement byte instead of a
// failure. Substitutions are tallied in count; the handle zeroes the tally
// before each step and reports it as the step's non-reversible count.
type substitutingEncoder struct {
	enc   transform.Transformer
	count int
}

func (s *substitutingEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nDst, nSrc, err = s.enc.Transform(dst, src, atEOF)
	for err != nil {
		rep, ok := err.(interface{ Replacement() byte })
		if !ok {
			return nDst, nSrc, err
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = rep.Replacement()
		nDst++
		s.count++
		_, sz := utf8.DecodeRune(src[nSrc:])
		err = nil
		if nSrc += sz; nSrc < len(src) {
			var dn, sn int
			dn, sn, err = s.enc.Transform(dst[nDst:], src[nSrc:], atEOF)
			nDst += dn
			nSrc += sn
		}
	}
	return nDst, nSrc, err
}

func (s *substitutingEncoder) Reset() {
	s.count = 0
	s.enc.Reset()
}
