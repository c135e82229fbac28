package cmdutil

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRootCmd(t *testing.T) {
	cmd := &cobra.Command{
		Use:   "greeter-test <port>",
		Short: "test command",
		Run:   func(*cobra.Command, []string) {},
	}
	cmd.Flags().Bool("fail-fast", false, "stop on the first failure")
	InitRootCmd(cmd)

	help := cmd.PersistentFlags().Lookup("help")
	require.NotNil(t, help)
	assert.True(t, help.Hidden)

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Usage())
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "fail-fast")
}
