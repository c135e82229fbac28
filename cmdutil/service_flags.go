package cmdutil

import (
	"time"

	logrussyslog "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/skycoin/skycoin/src/util/logging"
	"github.com/spf13/cobra"

	"github.com/skycoin/greeter/discord"
)

const discordLimit = time.Minute

// ServiceFlags are the flags shared by greeter services.
type ServiceFlags struct {
	MetricsAddr string
	SyslogNet   string
	SyslogAddr  string
	SyslogLvl   SyslogLvl
	LogLvl      string
	Tag         string
}

// Init registers the service flags on rootCmd.
func (sf *ServiceFlags) Init(rootCmd *cobra.Command, defaultTag string) {
	sf.SyslogLvl = LvlInfo

	rootCmd.Flags().StringVarP(&sf.MetricsAddr,
		"metrics", "m", "", "address to serve metrics API from")
	rootCmd.Flags().StringVar(&sf.SyslogNet,
		"syslog-net", "tcp", "network in which to dial to syslog server")
	rootCmd.Flags().StringVar(&sf.SyslogAddr,
		"syslog-addr", "", "address in which to dial to syslog server")
	rootCmd.Flags().Var(&sf.SyslogLvl,
		"syslog-lvl", "priority of logs sent to syslog (name or number)")
	rootCmd.Flags().StringVar(&sf.LogLvl,
		"log-level", "info", "level of logging (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().StringVar(&sf.Tag,
		"tag", defaultTag, "logging tag")
}

// Logger returns the service logger and installs the configured hooks.
// It exits if the flags are invalid.
func (sf *ServiceFlags) Logger() *logging.Logger {
	log := logging.MustGetLogger(sf.Tag)

	lvl, err := logging.LevelFromString(sf.LogLvl)
	if err != nil {
		log.WithError(err).Fatal("Failed to parse log level.")
	}
	logging.SetLevel(lvl)

	if sf.SyslogAddr != "" {
		hook, err := logrussyslog.NewSyslogHook(sf.SyslogNet, sf.SyslogAddr, sf.SyslogLvl.Priority(), sf.Tag)
		if err != nil {
			log.WithError(err).Fatalf("Unable to connect to syslog daemon on %v", sf.SyslogAddr)
		}
		logging.AddHook(hook)
	}

	if url := discord.GetWebhookURLFromEnv(); url != "" {
		logging.AddHook(discord.NewHook(sf.Tag, url, discord.WithLimit(discordLimit)))
	}

	return log
}
