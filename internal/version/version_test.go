package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "9.9.9"
	require.True(t, strings.HasPrefix(String(), "blockassist 9.9.9\n"))
	require.Contains(t, String(), "commit: "+GitCommit)
	require.Equal(t, String()+"\n", Template())
}
