package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/accountkeeper/internal/client/config"
)

// NewRootCmd creates the root command for the AccountKeeper CLI.
func NewRootCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "accountkeeper",
		Short:         "AccountKeeper - account administration client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path")
	cmd.PersistentFlags().StringVarP(&a.addr, "addr", "a", "", "server address (host:port)")
	cmd.PersistentFlags().StringVar(&a.token, "token", "", "access token (default $"+config.EnvToken+")")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "request timeout")

	cmd.AddCommand(
		newPingCmd(a),
		newLoginCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newPasswdCmd(a),
		newRenameCmd(a),
		newActiveCmd(a),
		newFindCmd(a),
		newOlderThanCmd(a),
		newDeleteCmd(a),
		newRecoverCmd(a),
	)

	return cmd
}

// loadConfig builds the effective config: file and environment first, then
// any global flag given on the command line.
func (a *App) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.ServerEndpointAddr = a.addr
	}
	if flags.Changed("token") {
		cfg.AccessToken = a.token
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = a.timeout
	}

	a.config = cfg
	return nil
}
