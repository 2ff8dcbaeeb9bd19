package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/otimlabs/wormhole-admin/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := cmd.NewAppState()
	err := cmd.NewRootCmd(a).ExecuteContext(ctx)
	stop()

	if err != nil {
		a.InitLogger()
		a.Logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
