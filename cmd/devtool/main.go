// Devtool runs operational tasks against the configured database.
//
// Usage:
//
//	devtool migrate up
//	devtool migrate down
//	devtool migrate status
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/novatale/armory/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch os.Args[1] {
	case "migrate":
		command := "up"
		if len(os.Args) > 2 {
			command = os.Args[2]
		}
		if err := runMigrations(cfg, command); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: devtool migrate [up|down|status]")
}
