// migrate applies the embedded schema migrations; run with go run ./cmd/migrate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"attendify/internal/config"
	"attendify/internal/store"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	cfg := config.Load()
	if err := store.Migrate(cfg.DatabaseURL, *direction); err != nil {
		if errors.Is(err, store.ErrNoChange) {
			// Already at target version; success.
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
