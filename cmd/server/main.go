// Package main is the entry point for the env2cc API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/harlanmb/env2cc/internal/logger"
	"github.com/harlanmb/env2cc/pkg/api"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	debug := flag.Bool("debug", false, "Verbose logging")
	flag.Parse()

	log := logger.Must(*debug)
	defer func() { _ = log.Sync() }()

	fmt.Printf("Starting env2cc API server on port %d...\n", *port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", *port)

	if err := api.StartServer(*port, log); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
