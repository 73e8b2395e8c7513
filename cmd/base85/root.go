package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:   "base85",
		Short: "Encode or decode Base85 data",
		Long: `base85 encodes FILE, or standard input, to standard output using one of
the standard, rfc1924 or arnold alphabets. With no FILE, or when FILE is -,
standard input is read.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&ctx.logFormatFlag, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(newEncodeCommand(ctx))
	rootCmd.AddCommand(newDecodeCommand(ctx))
	rootCmd.AddCommand(newAlphabetsCommand())

	return rootCmd
}
