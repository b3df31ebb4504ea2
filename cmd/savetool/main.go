// Command savetool works on save files and profile storage offline:
// normalizing legacy saves, converting between plain and zstd saves,
// and moving saves in and out of the configured store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := newRegistry()

	if len(os.Args) < 2 {
		registry.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		registry.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.Name(), err)
		os.Exit(1)
	}
}

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(&NormalizeCommand{out: os.Stdout})
	r.Register(&CompressCommand{})
	r.Register(&DecompressCommand{})
	r.Register(&InspectCommand{out: os.Stdout})
	r.Register(&MigrateCommand{out: os.Stdout})
	r.Register(&ExportCommand{out: os.Stdout})
	r.Register(&ImportCommand{out: os.Stdout})
	return r
}
