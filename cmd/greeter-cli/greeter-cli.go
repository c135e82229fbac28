// package main cmd/greeter-cli/greeter-cli.go
package main

import (
	"github.com/skycoin/greeter/cmd/greeter-cli/commands"
	"github.com/skycoin/greeter/cmdutil"
)

func main() {
	cmdutil.InitRootCmd(commands.RootCmd)
	commands.Execute()
}
