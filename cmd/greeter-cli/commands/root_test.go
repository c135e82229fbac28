package commands

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialer(t *testing.T) {
	d, err := dialer("")
	require.NoError(t, err)
	_, ok := d.(*net.Dialer)
	assert.True(t, ok)

	d, err = dialer("127.0.0.1:1080")
	require.NoError(t, err)
	require.NotNil(t, d)
	_, ok = d.(*net.Dialer)
	assert.False(t, ok)
}

func TestRootCmd_Args(t *testing.T) {
	assert.Error(t, RootCmd.Args(RootCmd, nil))
	assert.NoError(t, RootCmd.Args(RootCmd, []string{"127.0.0.1:8080"}))
}
