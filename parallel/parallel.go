// Package parallel splits large Base85 payloads into word-aligned chunks and
// encodes or decodes them on a bounded group of goroutines. Results are
// identical to the sequential functions of package base85, errors included.
package parallel

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/thehowl/base85"
)

// DefaultChunkWords is the number of 32-bit words handed to one goroutine
// when Options.ChunkWords is zero.
const DefaultChunkWords = 16384

// Options controls how work is split.
type Options struct {
	// Workers bounds the number of chunks processed at once. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
	// ChunkWords is the number of words per chunk. Zero means
	// DefaultChunkWords.
	ChunkWords int
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkWords <= 0 {
		o.ChunkWords = DefaultChunkWords
	}
	return o
}

// Encode returns enc.EncodeToString(src), encoding chunks of src
// concurrently. Each word maps to its own group, so chunks are independent.
func Encode(ctx context.Context, enc *base85.Encoding, src []byte, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	opts = opts.withDefaults()
	chunk := opts.ChunkWords * 4
	if len(src) <= chunk {
		return enc.EncodeToString(src), nil
	}

	parts := make([][]byte, (len(src)+chunk-1)/chunk)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range parts {
		if gctx.Err() != nil {
			break
		}
		lo := i * chunk
		hi := min(lo+chunk, len(src))
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts[i] = enc.AppendEncode(nil, src[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var n int
	for _, p := range parts {
		n += len(p)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, p := range parts {
		sb.Write(p)
	}
	return sb.String(), nil
}

// span is a piece of encoded text starting on a group boundary.
type span struct {
	lo, hi       int // input offsets
	outLo, outHi int // output offsets
}

// split cuts s into spans of roughly words groups each. A shorthand
// character always stands for five digits, so it never moves the group
// alignment; only the running digit count has to be tracked. It also returns
// the expanded length of s.
func split(enc *base85.Encoding, s string, words int) ([]span, int64) {
	var (
		spans []span
		units int64
		since int64
		start int
	)
	limit := int64(words) * 5
	for i := 0; i < len(s); i++ {
		if since >= limit && units%5 == 0 {
			spans = append(spans, span{lo: start, hi: i})
			start, since = i, 0
		}
		w := int64(1)
		if _, ok := enc.Expand(s[i]); ok {
			w = 5
		}
		units += w
		since += w
	}
	spans = append(spans, span{lo: start, hi: len(s)})

	var out int
	for i := range spans {
		spans[i].outLo = out
		out += wordsIn(enc, s[spans[i].lo:spans[i].hi]) * 4
		spans[i].outHi = out
	}
	return spans, units
}

func wordsIn(enc *base85.Encoding, s string) int {
	var units int
	for i := 0; i < len(s); i++ {
		if _, ok := enc.Expand(s[i]); ok {
			units += 5
		} else {
			units++
		}
	}
	return units / 5
}

// Decode returns enc.DecodeString(s), decoding chunks of s concurrently.
// When s is malformed the error is the one the sequential decoder reports,
// with offsets relative to the start of s.
func Decode(ctx context.Context, enc *base85.Encoding, s string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	spans, units := split(enc, s, opts.ChunkWords)
	if len(spans) == 1 {
		return enc.DecodeString(s)
	}

	out := make([]byte, spans[len(spans)-1].outHi)
	errs := make([]error, len(spans))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, sp := range spans {
		if gctx.Err() != nil {
			break
		}
		i, sp := i, sp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := out[sp.outLo:sp.outHi:sp.outHi]
			if _, err := enc.Decode(dst, []byte(s[sp.lo:sp.hi])); err != nil {
				errs[i] = rebase(err, int64(sp.lo), units)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// rebase converts an error reported for a chunk into one for the whole input.
func rebase(err error, base, units int64) error {
	switch err := err.(type) {
	case base85.InvalidCharacterError:
		return err + base85.InvalidCharacterError(base)
	case base85.OverflowError:
		return err + base85.OverflowError(base)
	case base85.InvalidLengthError:
		return base85.InvalidLengthError(units)
	}
	return err
}
