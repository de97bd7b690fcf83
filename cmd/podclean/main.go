// ABOUTME: Command line entry point for cleaning podcast feeds without the HTTP server
// ABOUTME: Runs the same clean service the API uses against a single feed URL

package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
