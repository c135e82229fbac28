package cmdutil

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindEnv sets every flag of cmd that was not given on the command line from the
// environment variable <PREFIX>_<FLAG_NAME>, e.g. GREETER_WRITE_TIMEOUT for --write-timeout.
func BindEnv(cmd *cobra.Command, prefix string) error {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		err = cmd.Flags().Set(f.Name, v.GetString(f.Name))
	})
	return err
}
