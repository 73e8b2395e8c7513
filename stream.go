package base85

import (
	"io"
)

// NewEncoder returns a stream encoder. Data written to the returned writer is
// encoded with enc and written to w. Words are 4 bytes long; when finished
// writing, the caller must Close the encoder to flush a trailing partial word,
// which is zero-padded.
func NewEncoder(enc *Encoding, w io.Writer) io.WriteCloser {
	return &encoder{enc: enc, w: w}
}

type encoder struct {
	enc  *Encoding
	err  error
	w    io.Writer
	buf  [4]byte // pending bytes of an incomplete word
	nbuf int
	out  [1280]byte
}

func (e *encoder) Write(p []byte) (n int, err error) {
	if e.err != nil {
		return 0, e.err
	}

	if e.nbuf > 0 {
		var i int
		for i = 0; i < len(p) && e.nbuf < 4; i++ {
			e.buf[e.nbuf] = p[i]
			e.nbuf++
		}
		n += i
		p = p[i:]
		if e.nbuf < 4 {
			return n, nil
		}
		nout := e.enc.Encode(e.out[:], e.buf[:])
		if _, e.err = e.w.Write(e.out[:nout]); e.err != nil {
			return n, e.err
		}
		e.nbuf = 0
	}

	for len(p) >= 4 {
		nn := len(e.out) / 5 * 4
		if nn > len(p) {
			nn = len(p)
		}
		nn -= nn % 4
		nout := e.enc.Encode(e.out[:], p[:nn])
		if _, e.err = e.w.Write(e.out[:nout]); e.err != nil {
			return n, e.err
		}
		n += nn
		p = p[nn:]
	}

	e.nbuf = copy(e.buf[:], p)
	n += e.nbuf
	return n, nil
}

// Close flushes any pending output. Writing after Close is an error.
func (e *encoder) Close() error {
	if e.err == nil && e.nbuf > 0 {
		nout := e.enc.Encode(e.out[:], e.buf[:e.nbuf])
		e.nbuf = 0
		_, e.err = e.w.Write(e.out[:nout])
	}
	if e.err == nil {
		e.err = errClosed
	}
	if e.err == errClosed {
		return nil
	}
	return e.err
}

type closedError struct{}

func (closedError) Error() string { return "base85: write to closed encoder" }

var errClosed error = closedError{}

// NewDecoder returns a stream decoder reading encoded data from r. ASCII
// whitespace in the input is skipped, so line-wrapped text can be decoded
// directly. Error offsets count every byte read from r, whitespace included.
func NewDecoder(enc *Encoding, r io.Reader) io.Reader {
	return &decoder{r: r, g: groupDecoder{enc: enc}}
}

type decoder struct {
	r   io.Reader
	g   groupDecoder
	err error
	off int64 // offset of the next byte read from r
	in  [1024]byte
	out []byte // decoded bytes not yet returned
	buf []byte // backing storage for out
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func (d *decoder) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if len(d.out) > 0 {
			n = copy(p, d.out)
			d.out = d.out[n:]
			return n, nil
		}
		if d.err != nil {
			return 0, d.err
		}

		nr, rerr := d.r.Read(d.in[:])
		d.buf = d.buf[:0]
		for _, c := range d.in[:nr] {
			off := d.off
			d.off++
			if isSpace(c) {
				continue
			}
			if d.buf, err = d.g.feed(d.buf, c, off); err != nil {
				d.err = err
				break
			}
		}
		d.out = d.buf

		if d.err == nil && rerr != nil {
			if rerr == io.EOF {
				if ferr := d.g.finish(); ferr != nil {
					rerr = ferr
				}
			}
			d.err = rerr
		}
	}
}
