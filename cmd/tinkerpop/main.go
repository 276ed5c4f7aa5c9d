// Package main provides the tinkerpop CLI application
package main

import (
	"fmt"
	"os"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("tinkerpop %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}

	fmt.Println("tinkerpop - graph traversal machine")
	fmt.Println("Run 'tinkerpop version' for build information")
}
