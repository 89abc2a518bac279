// Command edudashctl signs in to the EduSamagra backend and prints role
// dashboards in a terminal. The session is kept in a file between runs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "edudashctl:", err)
		os.Exit(1)
	}
}
