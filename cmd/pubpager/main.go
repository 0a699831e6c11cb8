// Command pubpager paginates and renders academic publication lists.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/researchfolio/pubpager/internal/cli"
	"github.com/researchfolio/pubpager/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return cli.ExitCode(root.ExecuteContext(ctx))
}
