// Package main is the entry point for the gcovcheck CLI.
package main

import "gcovcheck.dev/pkg/gcovcheck/cmd"

func main() {
	cmd.Execute()
}
