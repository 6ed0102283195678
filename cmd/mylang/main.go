// Command mylang runs a single MyLang source file against a fresh
// interpreter instance.
package main

import (
	"fmt"
	"os"

	"github.com/mylang-org/mylang"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: mylang <file.my>")
		os.Exit(2)
	}

	debug := os.Getenv("MYLANG_DEBUG") != ""
	in := mylang.NewInterpreter(os.Stdout, os.Stderr, debug)

	_, err := in.RunFile(os.Args[1], os.ReadFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
