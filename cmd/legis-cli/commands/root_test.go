package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootPrintsErrorsOnce(t *testing.T) {
	// ExecuteContext writes the error to stderr, cobra must not do it too
	require.True(t, rootCmd.SilenceErrors)
	require.True(t, rootCmd.SilenceUsage)
}
