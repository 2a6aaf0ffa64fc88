package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skingford/book-web/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ bookweb: %v\n", err)
		os.Exit(1)
	}
}
