// package main cmd/greeter-server/greeter-server.go
package main

import (
	"github.com/skycoin/greeter/cmd/greeter-server/commands"
	"github.com/skycoin/greeter/cmdutil"
)

func main() {
	cmdutil.InitRootCmd(commands.RootCmd)
	commands.Execute()
}
