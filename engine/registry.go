package engine

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Entry describes one supported encoding: its canonical name, the alias
// labels that resolve to it, and the codec implementation.
type Entry struct {
	Name    string
	Aliases []string
	enc     encoding.Encoding
}

// Group returns the canonical name followed by the aliases.
func (e *Entry) Group() []string {
	return append([]string{e.Name}, e.Aliases...)
}

func (e *Entry) isUTF8() bool {
	return e.Name == "UTF-8"
}

// table lists the supported encodings in catalog order. Label matching is
// case-insensitive and ignores punctuation, so "Shift_JIS", "shift-jis" and
// "SHIFTJIS" all resolve to the same entry.
var table = []*Entry{
	{Name: "UTF-8", Aliases: []string{"UTF8"}, enc: unicode.UTF8},
	{Name: "UTF-16", Aliases: []string{"UTF16"},
		enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
	{Name: "UTF-16BE", Aliases: []string{"UTF16BE"},
		enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
	{Name: "UTF-16LE", Aliases: []string{"UTF16LE"},
		enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	{Name: "UTF-32", Aliases: []string{"UTF32"},
		enc: utf32.UTF32(utf32.BigEndian, utf32.UseBOM)},
	{Name: "UTF-32BE", Aliases: []string{"UTF32BE"},
		enc: utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)},
	{Name: "UTF-32LE", Aliases: []string{"UTF32LE"},
		enc: utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)},

	{Name: "Shift_JIS", Aliases: []string{"SJIS", "MS_Kanji", "CP932", "Windows-31J", "csShiftJIS"},
		enc: japanese.ShiftJIS},
	{Name: "EUC-JP", Aliases: []string{"EUCJP", "csEUCPkdFmtJapanese"},
		enc: japanese.EUCJP},
	{Name: "ISO-2022-JP", Aliases: []string{"ISO2022JP", "csISO2022JP"},
		enc: japanese.ISO2022JP},
	{Name: "EUC-KR", Aliases: []string{"EUCKR", "CP949", "csEUCKR"},
		enc: korean.EUCKR},
	{Name: "GBK", Aliases: []string{"CP936", "Windows-936", "GB2312", "csGBK"},
		enc: simplifiedchinese.GBK},
	{Name: "GB18030", Aliases: []string{"csGB18030"},
		enc: simplifiedchinese.GB18030},
	{Name: "HZ-GB-2312", Aliases: []string{"HZ", "csHZGB2312"},
		enc: simplifiedchinese.HZGB2312},
	{Name: "Big5", Aliases: []string{"CP950", "csBig5"},
		enc: traditionalchinese.Big5},

	{Name: "Macintosh", Aliases: []string{"MacRoman", "Mac", "csMacintosh"},
		enc: charmap.Macintosh},
	{Name: "Macintosh-Cyrillic", Aliases: []string{"MacCyrillic", "x-mac-cyrillic"},
		enc: charmap.MacintoshCyrillic},

	{Name: "ISO-8859-1", Aliases: []string{"Latin1", "L1", "CP819", "IBM819", "csISOLatin1"},
		enc: charmap.ISO8859_1},
	{Name: "ISO-8859-2", Aliases: []string{"Latin2", "L2"}, enc: charmap.ISO8859_2},
	{Name: "ISO-8859-3", Aliases: []string{"Latin3", "L3"}, enc: charmap.ISO8859_3},
	{Name: "ISO-8859-4", Aliases: []string{"Latin4", "L4"}, enc: charmap.ISO8859_4},
	{Name: "ISO-8859-5", Aliases: []string{"Cyrillic"}, enc: charmap.ISO8859_5},
	{Name: "ISO-8859-6", Aliases: []string{"Arabic"}, enc: charmap.ISO8859_6},
	{Name: "ISO-8859-7", Aliases: []string{"Greek"}, enc: charmap.ISO8859_7},
	{Name: "ISO-8859-8", Aliases: []string{"Hebrew"}, enc: charmap.ISO8859_8},
	{Name: "ISO-8859-9", Aliases: []string{"Latin5", "L5"}, enc: charmap.ISO8859_9},
	{Name: "ISO-8859-10", Aliases: []string{"Latin6", "L6"}, enc: charmap.ISO8859_10},
	{Name: "ISO-8859-13", Aliases: []string{"Latin7"}, enc: charmap.ISO8859_13},
	{Name: "ISO-8859-14", Aliases: []string{"Latin8"}, enc: charmap.ISO8859_14},
	{Name: "ISO-8859-15", Aliases: []string{"Latin9"}, enc: charmap.ISO8859_15},
	{Name: "ISO-8859-16", Aliases: []string{"Latin10"}, enc: charmap.ISO8859_16},

	{Name: "KOI8-R", Aliases: []string{"csKOI8R"}, enc: charmap.KOI8R},
	{Name: "KOI8-U", Aliases: []string{"csKOI8U"}, enc: charmap.KOI8U},

	{Name: "Windows-874", Aliases: []string{"CP874"}, enc: charmap.Windows874},
	{Name: "Windows-1250", Aliases: []string{"CP1250"}, enc: charmap.Windows1250},
	{Name: "Windows-1251", Aliases: []string{"CP1251"}, enc: charmap.Windows1251},
	{Name: "Windows-1252", Aliases: []string{"CP1252"}, enc: charmap.Windows1252},
	{Name: "Windows-1253", Aliases: []string{"CP1253"}, enc: charmap.Windows1253},
	{Name: "Windows-1254", Aliases: []string{"CP1254"}, enc: charmap.Windows1254},
	{Name: "Windows-1255", Aliases: []string{"CP1255"}, enc: charmap.Windows1255},
	{Name: "Windows-1256", Aliases: []string{"CP1256"}, enc: charmap.Windows1256},
	{Name: "Windows-1257", Aliases: []string{"CP1257"}, enc: charmap.Windows1257},
	{Name: "Windows-1258", Aliases: []string{"CP1258"}, enc: charmap.Windows1258},

	{Name: "CP437", Aliases: []string{"IBM437", "csPC8CodePage437"}, enc: charmap.CodePage437},
	{Name: "CP850", Aliases: []string{"IBM850"}, enc: charmap.CodePage850},
	{Name: "CP852", Aliases: []string{"IBM852"}, enc: charmap.CodePage852},
	{Name: "CP855", Aliases: []string{"IBM855"}, enc: charmap.CodePage855},
	{Name: "CP858", Aliases: []string{"IBM858"}, enc: charmap.CodePage858},
	{Name: "CP860", Aliases: []string{"IBM860"}, enc: charmap.CodePage860},
	{Name: "CP862", Aliases: []string{"IBM862"}, enc: charmap.CodePage862},
	{Name: "CP863", Aliases: []string{"IBM863"}, enc: charmap.CodePage863},
	{Name: "CP865", Aliases: []string{"IBM865"}, enc: charmap.CodePage865},
	{Name: "CP866", Aliases: []string{"IBM866", "csIBM866"}, enc: charmap.CodePage866},

	{Name: "IBM037", Aliases: []string{"CP037", "EBCDIC-CP-US"}, enc: charmap.CodePage037},
	{Name: "IBM1047", Aliases: []string{"CP1047"}, enc: charmap.CodePage1047},
	{Name: "IBM1140", Aliases: []string{"CP1140"}, enc: charmap.CodePage1140},
}

var byLabel = make(map[string]*Entry)

func init() {
	for _, e := range table {
		byLabel[simplify(e.Name)] = e
		for _, a := range e.Aliases {
			byLabel[simplify(a)] = e
		}
	}
}

// simplify reduces a label to lowercase alphanumerics so lookups tolerate
// the usual case and punctuation variations between alias spellings.
func simplify(label string) string {
	out := make([]byte, 0, len(label))
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case 'A' <= c && c <= 'Z':
			out = append(out, c+'a'-'A')
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
			out = append(out, c)
		}
	}
	return string(out)
}

// lookup resolves a label to its registry entry. Labels outside the table
// fall back to the IANA index so uncommon but registered names still work.
func lookup(label string) (*Entry, bool) {
	if e, ok := byLabel[simplify(label)]; ok {
		return e, true
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, false
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		name = label
	}
	return &Entry{Name: name, enc: enc}, true
}

// Canonical returns the canonical name for a label and whether the label is
// recognized at all.
func Canonical(label string) (string, bool) {
	e, ok := lookup(label)
	if !ok {
		return "", false
	}
	return e.Name, true
}

// Supported reports whether a label resolves to a usable encoding.
func Supported(label string) bool {
	_, ok := lookup(label)
	return ok
}

// Encodings invokes yield once per alias group, in catalog order, with the
// canonical name first in each group. Enumeration stops early when yield
// returns false.
func Encodings(yield func(group []string) bool) {
	for _, e := range table {
		if !yield(e.Group()) {
			return
		}
	}
}
