// Command server runs the Carbon Aegis HTTP API.
//
// Configuration is read from CONFIG_PATH (YAML) with environment variable
// overrides; see internal/config.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/carbonaegis/aegis-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
