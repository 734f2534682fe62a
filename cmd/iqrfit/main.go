// iqrfit fits least-squares lines to (id, x, y) observations and removes
// outliers with the interquartile-range rule.
//
// Usage:
//
//	iqrfit analyze <input> [--iterate] [--swap-axes] [-o <dir>] [--plots] [--archive]
//	iqrfit analyze --config iqrfit.yaml
//	iqrfit version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
