// Package main is the entry point for the metamorph CLI.
package main

import "metamorph.dev/pkg/metamorph/cmd"

func main() {
	cmd.Execute()
}
