package main

import (
	"context"
	"fmt"
	"os"

	"github.com/preston-bernstein/gameday-threads/internal/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := cli.NewRootCommand(cli.RootOptions{Version: version})
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "gamethread:", err)
		return 1
	}
	return 0
}
