// Package base85 implements Base85 binary-to-text encodings over a choice of
// alphabets, including the variant used by Autodesk Arnold to embed float and
// integer arrays in .ass scene files.
//
// Every encoding works on 32-bit words: the input is zero-padded to a multiple
// of 4 bytes, each word is read as an unsigned integer in the encoding's byte
// order and written as 5 base-85 digits, most significant first. Decoding
// always yields a multiple of 4 bytes; callers that encoded a buffer whose
// length was not a multiple of 4 must trim the padding themselves.
//
// # Alphabets
//
// Three encodings are provided:
//
//   - [Standard] uses the characters '!' through 'u' in network byte order,
//     the same digits as Adobe's Ascii85 but without its 'z' shorthand.
//   - [RFC1924] uses the alphanumeric-first alphabet of RFC 1924 in network
//     byte order.
//   - [Arnold] uses the characters '$' through 'x' in little-endian byte
//     order. A word whose bits are all zero is written as the single
//     character 'z', and a word holding the bit pattern of float32(1) is
//     written as 'y'.
//
// The shorthand is only ever emitted for a whole word. When decoding, 'z'
// and 'y' are expanded wherever they occur, so text produced by replacing
// the five-character groups in an already-encoded string is also accepted.
package base85

import (
	"encoding/binary"
	"strconv"
	"strings"
)

const (
	standardTable = "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstu"
	rfc1924Table  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!#$%&()*+-;<=>?@^_`{|}~"
	arnoldTable   = "$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwx"
)

// invalid marks bytes outside of an alphabet in a decode table.
const invalid = 0xff

// byteOrder is satisfied by binary.BigEndian and binary.LittleEndian.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// specialValue is a word which is written as a single character instead of
// its five-character group.
type specialValue struct {
	word   uint32
	group  string
	char   byte
	digits [5]byte
}

// An Encoding is a Base85 alphabet together with the byte order used to read
// words and an optional set of single-character shorthands. Encodings are
// immutable and safe for concurrent use.
type Encoding struct {
	name      string
	order     byteOrder
	encode    string
	decodeMap [256]byte
	specials  []specialValue
	// specialAt maps a shorthand character to its index in specials, plus 1.
	specialAt [256]uint8
}

var (
	// Standard is the network byte order encoding over '!' to 'u'.
	Standard = newEncoding("standard", binary.BigEndian, standardTable, nil)

	// RFC1924 is the network byte order encoding over the RFC 1924 alphabet.
	RFC1924 = newEncoding("rfc1924", binary.BigEndian, rfc1924Table, nil)

	// Arnold is the little-endian encoding used in Arnold scene files, with
	// 'z' standing for a zero word and 'y' for the bits of float32(1).
	// The zero shorthand is checked first.
	Arnold = newEncoding("arnold", binary.LittleEndian, arnoldTable, []specialValue{
		{word: 0x00000000, group: "$$$$$", char: 'z'},
		{word: 0x3f800000, group: "8Fcb9", char: 'y'},
	})
)

var encodings = []*Encoding{Standard, RFC1924, Arnold}

func newEncoding(name string, order byteOrder, table string, specials []specialValue) *Encoding {
	if len(table) != 85 {
		panic("base85: encoding alphabet is not 85 bytes long")
	}
	e := &Encoding{
		name:   name,
		order:  order,
		encode: table,
	}
	for i := range e.decodeMap {
		e.decodeMap[i] = invalid
	}
	for i := 0; i < len(table); i++ {
		if e.decodeMap[table[i]] != invalid {
			panic("base85: duplicate character " + strconv.QuoteRune(rune(table[i])) + " in alphabet")
		}
		e.decodeMap[table[i]] = byte(i)
	}
	for i, sv := range specials {
		if e.decodeMap[sv.char] != invalid {
			panic("base85: shorthand " + strconv.QuoteRune(rune(sv.char)) + " is part of the alphabet")
		}
		for j := 0; j < 5; j++ {
			d := e.decodeMap[sv.group[j]]
			if d == invalid {
				panic("base85: shorthand group " + strconv.Quote(sv.group) + " is not in the alphabet")
			}
			specials[i].digits[j] = d
		}
		e.specialAt[sv.char] = uint8(i + 1)
	}
	e.specials = specials
	return e
}

// Lookup returns the encoding with the given name: "standard", "rfc1924" or
// "arnold". Names are matched case-insensitively.
func Lookup(name string) (*Encoding, bool) {
	for _, e := range encodings {
		if strings.EqualFold(e.name, name) {
			return e, true
		}
	}
	return nil, false
}

// Names returns the names accepted by [Lookup].
func Names() []string {
	names := make([]string, len(encodings))
	for i, e := range encodings {
		names[i] = e.name
	}
	return names
}

func (e *Encoding) Name() string { return e.name }

// ByteOrder returns the order in which the bytes of a word are read.
func (e *Encoding) ByteOrder() binary.ByteOrder { return e.order }

// Alphabet returns the 85 digit characters, digit 0 first.
func (e *Encoding) Alphabet() string { return e.encode }

// Shorthand returns the single character written for word, if any.
func (e *Encoding) Shorthand(word uint32) (byte, bool) {
	for _, sv := range e.specials {
		if sv.word == word {
			return sv.char, true
		}
	}
	return 0, false
}

// Expand returns the five-character group a shorthand character stands for.
func (e *Encoding) Expand(c byte) (string, bool) {
	if i := e.specialAt[c]; i != 0 {
		return e.specials[i-1].group, true
	}
	return "", false
}

// Digit reports the value of the alphabet character c.
func (e *Encoding) Digit(c byte) (byte, bool) {
	d := e.decodeMap[c]
	return d, d != invalid
}

// InvalidCharacterError is returned when decoding meets a byte which is
// neither a digit of the alphabet nor one of its shorthand characters. The
// value is the offset of that byte in the input.
type InvalidCharacterError int64

func (e InvalidCharacterError) Error() string {
	return "illegal base85 data at input byte " + strconv.FormatInt(int64(e), 10)
}

// InvalidLengthError is returned when the input, once shorthand characters
// are expanded, does not split into whole five-character groups. The value is
// the expanded length.
type InvalidLengthError int64

func (e InvalidLengthError) Error() string {
	return "base85 data length " + strconv.FormatInt(int64(e), 10) + " is not a multiple of 5"
}

// OverflowError is returned for a group whose value does not fit in 32 bits.
// The value is the offset of the byte supplying the group's first digit.
type OverflowError int64

func (e OverflowError) Error() string {
	return "base85 group at input byte " + strconv.FormatInt(int64(e), 10) + " overflows 32 bits"
}

// EncodedLen returns the maximum length of the encoding of n source bytes.
// Shorthand characters make the actual encoding shorter.
func (e *Encoding) EncodedLen(n int) int {
	return (n + 3) / 4 * 5
}

// DecodedLen returns the maximum number of bytes decoded from n bytes of
// encoded data.
func (e *Encoding) DecodedLen(n int) int {
	if len(e.specials) > 0 {
		return n * 4
	}
	return n / 5 * 4
}

// Encode encodes src, writing at most [Encoding.EncodedLen](len(src)) bytes
// to dst, and returns the number of bytes written. A trailing partial word
// is padded with zero bytes.
func (e *Encoding) Encode(dst, src []byte) int {
	di := 0
	for len(src) >= 4 {
		di += e.encodeWord(dst[di:], e.order.Uint32(src))
		src = src[4:]
	}
	if len(src) > 0 {
		var w [4]byte
		copy(w[:], src)
		di += e.encodeWord(dst[di:], e.order.Uint32(w[:]))
	}
	return di
}

func (e *Encoding) encodeWord(dst []byte, x uint32) int {
	for _, sv := range e.specials {
		if x == sv.word {
			dst[0] = sv.char
			return 1
		}
	}
	_ = dst[4]
	dst[4] = e.encode[x%85]
	x /= 85
	dst[3] = e.encode[x%85]
	x /= 85
	dst[2] = e.encode[x%85]
	x /= 85
	dst[1] = e.encode[x%85]
	x /= 85
	dst[0] = e.encode[x]
	return 5
}

// AppendEncode appends the encoding of src to dst and returns the extended
// buffer.
func (e *Encoding) AppendEncode(dst, src []byte) []byte {
	n := e.EncodedLen(len(src))
	if cap(dst)-len(dst) < n {
		grown := make([]byte, len(dst), len(dst)+n)
		copy(grown, dst)
		dst = grown
	}
	m := e.Encode(dst[len(dst):len(dst)+n], src)
	return dst[:len(dst)+m]
}

// EncodeToString returns the encoding of src.
func (e *Encoding) EncodeToString(src []byte) string {
	buf := make([]byte, e.EncodedLen(len(src)))
	n := e.Encode(buf, src)
	return string(buf[:n])
}

// groupDecoder accumulates digits into words. It is shared by the one-shot
// and the streaming decoders, which differ only in how input arrives.
type groupDecoder struct {
	enc   *Encoding
	v     uint64
	n     int   // digits in the pending group
	start int64 // input offset of the pending group's first digit
	units int64 // expanded length consumed so far
}

// push adds one digit read from input offset off. When the digit completes a
// group the decoded word is returned with full set.
func (g *groupDecoder) push(d byte, off int64) (word uint32, full bool, err error) {
	if g.n == 0 {
		g.start = off
	}
	g.v = g.v*85 + uint64(d)
	g.n++
	g.units++
	if g.n < 5 {
		return 0, false, nil
	}
	v := g.v
	g.v, g.n = 0, 0
	if v > 0xffffffff {
		return 0, false, OverflowError(g.start)
	}
	return uint32(v), true, nil
}

// feed decodes the byte c found at input offset off, appending completed
// words to dst.
func (g *groupDecoder) feed(dst []byte, c byte, off int64) ([]byte, error) {
	if i := g.enc.specialAt[c]; i != 0 {
		sv := &g.enc.specials[i-1]
		if g.n == 0 {
			g.units += 5
			return g.enc.order.AppendUint32(dst, sv.word), nil
		}
		for _, d := range sv.digits {
			w, full, err := g.push(d, off)
			if err != nil {
				return dst, err
			}
			if full {
				dst = g.enc.order.AppendUint32(dst, w)
			}
		}
		return dst, nil
	}
	d := g.enc.decodeMap[c]
	if d == invalid {
		return dst, InvalidCharacterError(off)
	}
	w, full, err := g.push(d, off)
	if err != nil {
		return dst, err
	}
	if full {
		dst = g.enc.order.AppendUint32(dst, w)
	}
	return dst, nil
}

// finish reports an error if a partial group is pending.
func (g *groupDecoder) finish() error {
	if g.n != 0 {
		return InvalidLengthError(g.units)
	}
	return nil
}

// decodedSize returns the exact decoded size of well-formed src.
func (e *Encoding) decodedSize(src []byte) int {
	if len(e.specials) == 0 {
		return len(src) / 5 * 4
	}
	units := len(src)
	for _, c := range src {
		if e.specialAt[c] != 0 {
			units += 4
		}
	}
	return units / 5 * 4
}

// AppendDecode appends the decoding of src to dst and returns the extended
// buffer. On error dst is returned unchanged.
func (e *Encoding) AppendDecode(dst, src []byte) ([]byte, error) {
	n := e.decodedSize(src)
	if cap(dst)-len(dst) < n {
		grown := make([]byte, len(dst), len(dst)+n)
		copy(grown, dst)
		dst = grown
	}
	out := dst
	g := groupDecoder{enc: e}
	var err error
	for i, c := range src {
		if out, err = g.feed(out, c, int64(i)); err != nil {
			return dst, err
		}
	}
	if err := g.finish(); err != nil {
		return dst, err
	}
	return out, nil
}

// Decode decodes src into dst, returning the number of bytes written. dst
// must hold [Encoding.DecodedLen](len(src)) bytes. The input must consist
// solely of alphabet and shorthand characters; see [NewDecoder] for a decoder
// that skips whitespace.
func (e *Encoding) Decode(dst, src []byte) (int, error) {
	out, err := e.AppendDecode(dst[:0], src)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// DecodeString returns the bytes represented by s. On error no partial
// output is returned.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	out, err := e.AppendDecode(nil, []byte(s))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// Validate checks that s is well-formed for the encoding, returning the same
// error [Encoding.DecodeString] would.
func (e *Encoding) Validate(s string) error {
	g := groupDecoder{enc: e}
	var scratch [20]byte
	for i := 0; i < len(s); i++ {
		if _, err := g.feed(scratch[:0], s[i], int64(i)); err != nil {
			return err
		}
	}
	return g.finish()
}
