package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/thehowl/base85"
	"github.com/thehowl/base85/internal/config"
	"github.com/thehowl/base85/internal/logging"
	"github.com/thehowl/base85/parallel"
)

type commandContext struct {
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	config *config.Config
	logger *slog.Logger
}

func (c *commandContext) init(cmd *cobra.Command) error {
	cfg, path, err := config.Load(strings.TrimSpace(c.configFlag))
	if err != nil {
		return err
	}
	if c.logLevelFlag != "" {
		cfg.LogLevel = c.logLevelFlag
	}
	if c.logFormatFlag != "" {
		cfg.LogFormat = c.logFormatFlag
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("loaded configuration", "path", path)
	}
	c.config = cfg
	c.logger = logger
	return nil
}

// codecFlags are the flags shared by encode and decode. Flags left unset take
// their value from the configuration file.
type codecFlags struct {
	alphabet   string
	workers    int
	chunkWords int
	floats     bool
	uints      bool
}

func (f *codecFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.alphabet, "alphabet", "a", "", "Alphabet: "+strings.Join(base85.Names(), ", "))
	flags.IntVarP(&f.workers, "jobs", "j", 0, "Number of concurrent workers, 1 for sequential")
	flags.IntVar(&f.chunkWords, "chunk-words", 0, "Words per chunk handed to a worker")
	flags.BoolVar(&f.floats, "float", false, "Treat data as whitespace separated float32 values")
	flags.BoolVar(&f.uints, "uint", false, "Treat data as whitespace separated uint32 values")
	cmd.MarkFlagsMutuallyExclusive("float", "uint")
}

func (f *codecFlags) resolve(cmd *cobra.Command, cfg *config.Config) (*base85.Encoding, parallel.Options, error) {
	name := cfg.Alphabet
	if cmd.Flags().Changed("alphabet") {
		name = f.alphabet
	}
	enc, ok := base85.Lookup(name)
	if !ok {
		return nil, parallel.Options{}, fmt.Errorf("unknown alphabet %q (want one of %s)", name, strings.Join(base85.Names(), ", "))
	}
	opts := cfg.ParallelOptions()
	if cmd.Flags().Changed("jobs") {
		if f.workers < 1 {
			return nil, parallel.Options{}, fmt.Errorf("--jobs must be at least 1")
		}
		opts.Workers = f.workers
	}
	if cmd.Flags().Changed("chunk-words") {
		if f.chunkWords < 1 {
			return nil, parallel.Options{}, fmt.Errorf("--chunk-words must be at least 1")
		}
		opts.ChunkWords = f.chunkWords
	}
	return enc, opts, nil
}

// openInput returns the file named by args, or standard input.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
