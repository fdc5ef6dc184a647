package main

import (
	"context"
	"os"

	"github.com/google/flogger-sub002/cmd/flogdemo/cli"
	"github.com/google/flogger-sub002/flog"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		flog.New(nil).AtError().WithCause(err).Log("run failed")
		os.Exit(1)
	}
}
