package main

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-hrms-client/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	output  string
	verbose bool
	quiet   bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	app    *app
}

// execute runs the command tree for args and tears the app down however the
// command exits; cobra skips post-run hooks after a RunE error.
func execute(in io.Reader, out, errOut io.Writer, args []string) error {
	opts := &rootOptions{in: in, out: out, errOut: errOut}
	defer opts.shutdown()

	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// shutdown reports metrics when verbose and releases the log sink.
func (o *rootOptions) shutdown() {
	if o.app == nil {
		return
	}
	if o.verbose {
		o.app.logMetrics()
	}
	o.app.close()
	o.app = nil
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hrms",
		Short:         "Command-line client for the HR management system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(opts.output); err != nil {
				return err
			}
			cfg := config.New()
			if !opts.quiet && opts.output == outputText {
				fmt.Fprintln(opts.errOut, figure.NewFigure(cfg.GetAppName(), "cybermedium", true).String())
			}
			a, err := newApp(cfg, opts.errOut, opts.verbose)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
	}
	rootCmd.SetIn(opts.in)
	rootCmd.SetOut(opts.out)
	rootCmd.SetErr(opts.errOut)

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress the banner")

	rootCmd.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newRegisterCmd(opts),
		newWhoamiCmd(opts),
		newProfileCmd(opts),
		newEmployeeCmd(opts),
		newShiftCmd(opts),
		newDashboardCmd(opts),
	)
	return rootCmd
}
