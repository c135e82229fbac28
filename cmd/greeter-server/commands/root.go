package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/skycoin/greeter"
	"github.com/skycoin/greeter/cmdutil"
	"github.com/skycoin/greeter/httputil"
	"github.com/skycoin/greeter/metricsutil"
	"github.com/skycoin/greeter/resourcemonitor"
	"github.com/skycoin/greeter/servermetrics"
)

const envPrefix = "GREETER"

var (
	sf            cmdutil.ServiceFlags
	failFast      bool
	writeTimeout  time.Duration
	proxyProtocol bool
	headerTimeout time.Duration
	monitor       bool
)

func init() {
	sf.Init(RootCmd, "greeter")

	RootCmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop the server on the first failed greeting")
	RootCmd.Flags().DurationVar(&writeTimeout, "write-timeout", greeter.DefaultWriteTimeout, "greeting write timeout (0 for none)")
	RootCmd.Flags().BoolVar(&proxyProtocol, "proxy-protocol", false, "read client addresses from PROXY protocol headers")
	RootCmd.Flags().DurationVar(&headerTimeout, "proxy-header-timeout", greeter.DefaultHeaderTimeout, "how long to wait for a PROXY protocol header")
	RootCmd.Flags().BoolVar(&monitor, "monitor", false, "log a warning when CPU or memory load is high")
}

// RootCmd contains commands for greeter-server
var RootCmd = &cobra.Command{
	Use:   "greeter-server <port>",
	Short: "Greets every TCP client on 127.0.0.1:<port> with \"Hello!\"",
	Long: `Listens on 127.0.0.1:<port>, writes "Hello!\n" to every client and closes the connection.
Flags may also be set from GREETER_<FLAG> environment variables.`,
	Args: portArg,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return cmdutil.BindEnv(cmd, envPrefix)
	},
	Run: func(_ *cobra.Command, args []string) {
		log := sf.Logger()

		port, err := greeter.ParsePort(args[0])
		if err != nil {
			log.WithError(err).Fatal("Expected a port argument.")
		}

		lis, err := greeter.Listen(greeter.ListenConfig{
			Port:          port,
			ProxyProtocol: proxyProtocol,
			HeaderTimeout: headerTimeout,
		})
		if err != nil {
			log.WithError(err).Fatalf("Failed to listen on %s.", greeter.LocalAddr(port))
		}
		log.Infof("Listening for connections on %s", lis.Addr())

		srvConf := greeter.ServerConfig{
			FailFast:     failFast,
			WriteTimeout: writeTimeout,
		}
		srv := greeter.NewServer(&srvConf, prepareMetrics(sf.MetricsAddr))
		srv.SetLogger(log)

		ctx, cancel := cmdutil.SignalContext(context.Background(), log)
		defer cancel()

		if monitor {
			resourcemonitor.New(log, resourcemonitor.DefaultOptions).StartInBackground(ctx)
		}

		startedAt := time.Now()
		metricsutil.ServeHTTPMetrics(log, sf.MetricsAddr, httputil.MakeHealthHandler(startedAt, func() interface{} {
			return srv.Stats()
		}))

		go func() {
			<-ctx.Done()
			log.WithError(srv.Close()).Info("Closed server.")
		}()

		if err := srv.Serve(lis); err != nil {
			log.WithError(err).Fatal("Server stopped.")
		}
	},
}

// portArg requires exactly one argument holding a valid port.
func portArg(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return errors.New("expected a port argument")
	case len(args) > 1:
		return fmt.Errorf("expected a single port argument, got %d arguments", len(args))
	}
	_, err := greeter.ParsePort(args[0])
	return err
}

func prepareMetrics(addr string) servermetrics.Metrics {
	if addr == "" {
		return servermetrics.NewEmpty()
	}
	return servermetrics.NewVictoriaMetrics()
}

// Execute executes root CLI command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
