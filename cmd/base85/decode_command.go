package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thehowl/base85"
	"github.com/thehowl/base85/parallel"
)

var errTerminalOutput = errors.New("refusing to write binary data to a terminal (use --force, --float or --uint)")

func newDecodeCommand(ctx *commandContext) *cobra.Command {
	var (
		flags codecFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Decode Base85 text to data",
		Long: `decode reads Base85 text and writes the decoded bytes. Whitespace in the
input is ignored. The output length is always a multiple of 4 bytes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, opts, err := flags.resolve(cmd, ctx.config)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			raw := !flags.floats && !flags.uints
			if raw && !force && isTerminal(out) {
				return errTerminalOutput
			}
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			var data []byte
			if opts.Workers == 1 {
				data, err = io.ReadAll(base85.NewDecoder(enc, in))
			} else {
				var text []byte
				if text, err = io.ReadAll(in); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				data, err = parallel.Decode(cmd.Context(), enc, strings.Join(strings.Fields(string(text)), ""), opts)
			}
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			ctx.logger.Debug("decoded input",
				"alphabet", enc.Name(),
				"bytes", len(data),
				"workers", opts.Workers,
			)
			if raw {
				_, err = out.Write(data)
				return err
			}
			return writeWords(out, enc, data, flags.floats)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Write binary output even to a terminal")
	return cmd
}

// writeWords prints each 32-bit word of data on its own line.
func writeWords(out io.Writer, enc *base85.Encoding, data []byte, floats bool) error {
	bw := bufio.NewWriter(out)
	order := enc.ByteOrder()
	var line []byte
	for i := 0; i+4 <= len(data); i += 4 {
		word := order.Uint32(data[i:])
		line = line[:0]
		if floats {
			line = strconv.AppendFloat(line, float64(math.Float32frombits(word)), 'g', -1, 32)
		} else {
			line = strconv.AppendUint(line, uint64(word), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
