package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/accountkeeper/internal/client/client"
)

func newPingCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				if err := c.Ping(ctx); err != nil {
					return err
				}
				cmd.Println("OK")
				return nil
			})
		},
	}
}

type loginConfig struct {
	login    string
	password string
}

func newLoginCmd(a *App) *cobra.Command {
	cfg := &loginConfig{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print an access token",
		Long: `Authenticate with login and password. The printed token can be exported
as ACCOUNTKEEPER_TOKEN or passed with --token to later commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, a, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.login, "login", "l", "", "account login")
	cmd.Flags().StringVarP(&cfg.password, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("login")

	return cmd
}

func runLogin(cmd *cobra.Command, a *App, cfg *loginConfig) error {
	password, err := passwordOr(cfg.password, "Password: ", cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
		resp, err := c.Login(ctx, cfg.login, password)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}
