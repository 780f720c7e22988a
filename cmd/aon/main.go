// aon - AON codec CLI tool
//
// Usage:
//
//	aon encode [file] --root NAME    Encode JSON, YAML, TOML or MessagePack as AON
//	aon decode [file] [--to FORMAT]  Decode AON to JSON, YAML or MessagePack
//	aon schema [file] --root NAME    Print inferred schemas and their fingerprint
//	aon roundtrip [file] --root NAME Encode, decode and compare
//	aon version                      Print version info
//
// If no file is given, reads from stdin. Settings can also come from an
// .aon.yaml file in the working directory or from --config.
package main

import (
	"os"

	"github.com/Neumenon/aon/cmd/aon/internal/cmdapi"
)

func main() {
	root := cmdapi.NewRoot()
	root.SetOut(os.Stdout)
	if err := root.Execute(); err != nil {
		cmdapi.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
