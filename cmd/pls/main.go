package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/pls-go/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()

	root, err := cli.NewRootCmd(isVerbose())
	if err != nil {
		fmt.Fprintln(os.Stderr, "pls:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "pls:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("PLS_DEBUG"), "1") || strings.EqualFold(os.Getenv("PLS_DEBUG"), "true")
}
