// Command gifcast renders asciicast terminal recordings as animated GIFs.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	mode := pslog.ModeStructured
	if term.IsTerminal(int(os.Stderr.Fd())) {
		mode = pslog.ModeConsole
	}
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: mode}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("gifcast command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gifcast",
		Short:         "Render asciicast terminal recordings as animated GIFs",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newConvertCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newThemesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}
