package e2etest

import (
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func baseDir(pattern string) (string, error) {
	tempName, err := os.MkdirTemp(os.TempDir(), pattern)
	if err != nil {
		return "", err
	}

	if err := os.Chmod(tempName, 0755); err != nil {
		return "", err
	}

	return tempName, nil
}

// freePort asks the kernel for a port nobody listens on right now.
func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}
