// Package main is the entry point for the formprobe CLI.
package main

import "formprobe.dev/pkg/formprobe/cmd"

func main() {
	cmd.Execute()
}
