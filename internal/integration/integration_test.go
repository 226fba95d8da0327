//go:build integration

package integration

import (
	"flag"
	"fmt"
	"os"
	"testing"

	"tourguide.openclassrooms.org/internal/config"
)

var integrationConfig string

func init() {
	flag.StringVar(&integrationConfig, "integration-config", "", "Path to integration configuration file")
}

// cfg points the tests at live collaborators.
var cfg *config.Config

func TestMain(m *testing.M) {
	flag.Parse()

	if integrationConfig == "" {
		fmt.Fprintln(os.Stderr, "Error: -integration-config flag is required for integration tests")
		os.Exit(1)
	}

	cfg = config.NewConfig(4000, "integration")
	if err := config.LoadConfigFromFile(integrationConfig, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", integrationConfig, err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
