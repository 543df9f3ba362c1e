package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCreateApp(t *testing.T) {
	// Set required environment variables for test
	os.Setenv("JWT_SECRET", "test-secret-123")
	os.Setenv("KAFKA_BROKERS", "localhost:9093")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("KAFKA_BROKERS")
	}()

	// Validate fx dependency graph
	require.NoError(t, fx.ValidateApp(CreateApp()))
}
