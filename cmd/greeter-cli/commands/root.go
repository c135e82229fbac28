package commands

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/skycoin/skycoin/src/util/logging"
	"github.com/spf13/cobra"
	"golang.org/x/net/proxy"

	"github.com/skycoin/greeter"
	"github.com/skycoin/greeter/cmdutil"
)

const envPrefix = "GREETER_CLI"

var (
	payload   string
	timeout   time.Duration
	proxyAddr string
	logLvl    string
)

func init() {
	RootCmd.Flags().StringVarP(&payload, "payload", "p", "", "data to send before reading the greeting")
	RootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "time allowed for the whole exchange")
	RootCmd.Flags().StringVar(&proxyAddr, "proxy", "", "SOCKS5 proxy to dial through, e.g. 127.0.0.1:1080")
	RootCmd.Flags().StringVar(&logLvl, "log-level", "error", "level of logging")
}

// RootCmd contains commands for greeter-cli
var RootCmd = &cobra.Command{
	Use:   "greeter-cli <addr>",
	Short: "Fetches the greeting from a greeter server",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return cmdutil.BindEnv(cmd, envPrefix)
	},
	Run: func(_ *cobra.Command, args []string) {
		logger := logging.MustGetLogger("greeter_cli")
		lvl, err := logging.LevelFromString(logLvl)
		if err != nil {
			logger.WithError(err).Fatal("Failed to parse log level.")
		}
		logging.SetLevel(lvl)

		d, err := dialer(proxyAddr)
		if err != nil {
			logger.WithError(err).Fatal("Failed to prepare dialer.")
		}

		ctx, cancel := cmdutil.SignalContext(context.Background(), logger)
		defer cancel()
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()

		addr := args[0]
		logger.WithField("addr", addr).Debug("Greeting server...")

		b, err := greeter.Greet(ctx, d, addr, []byte(payload))
		if err != nil {
			logger.WithError(err).Fatal("Failed to fetch greeting.")
		}
		if _, err := fmt.Fprint(os.Stdout, string(b)); err != nil {
			logger.WithError(err).Fatal("Failed to print greeting.")
		}
	},
}

func dialer(proxyAddr string) (greeter.Dialer, error) {
	if proxyAddr == "" {
		return &net.Dialer{}, nil
	}
	return proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
}

// Execute executes root CLI command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
