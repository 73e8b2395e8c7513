package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thehowl/base85"
	"github.com/thehowl/base85/parallel"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "encode [FILE]",
		Short: "Encode data to Base85 text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, opts, err := flags.resolve(cmd, ctx.config)
			if err != nil {
				return err
			}
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			out := cmd.OutOrStdout()

			var n int64
			switch {
			case flags.floats || flags.uints:
				data, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				words, err := parseWords(enc, string(data), flags.floats)
				if err != nil {
					return err
				}
				n = int64(len(words))
				if err := encodeAll(cmd, enc, opts, words, out); err != nil {
					return err
				}
			case opts.Workers == 1:
				w := base85.NewEncoder(enc, out)
				if n, err = io.Copy(w, in); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				if err := w.Close(); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			default:
				data, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				n = int64(len(data))
				if err := encodeAll(cmd, enc, opts, data, out); err != nil {
					return err
				}
			}

			ctx.logger.Debug("encoded input",
				"alphabet", enc.Name(),
				"bytes", n,
				"workers", opts.Workers,
				"chunk_words", opts.ChunkWords,
			)
			if isTerminal(out) {
				_, err = io.WriteString(out, "\n")
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func encodeAll(cmd *cobra.Command, enc *base85.Encoding, opts parallel.Options, data []byte, out io.Writer) error {
	var (
		s   string
		err error
	)
	if opts.Workers == 1 {
		s = enc.EncodeToString(data)
	} else if s, err = parallel.Encode(cmd.Context(), enc, data, opts); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = io.WriteString(out, s)
	return err
}

// parseWords packs whitespace separated decimal values as 32-bit words in the
// encoding's byte order.
func parseWords(enc *base85.Encoding, text string, floats bool) ([]byte, error) {
	fields := strings.Fields(text)
	order := enc.ByteOrder()
	buf := make([]byte, 4*len(fields))
	for i, f := range fields {
		var word uint32
		if floats {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i+1, err)
			}
			word = math.Float32bits(float32(v))
		} else {
			v, err := strconv.ParseUint(f, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i+1, err)
			}
			word = uint32(v)
		}
		order.PutUint32(buf[4*i:], word)
	}
	return buf, nil
}
