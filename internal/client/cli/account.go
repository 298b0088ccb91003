package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/accountkeeper/internal/api"
	"github.com/dmitrijs2005/accountkeeper/internal/client/client"
)

type createConfig struct {
	req api.CreateAccountRequest
}

func newCreateCmd(a *App) *cobra.Command {
	cfg := &createConfig{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := passwordOr(cfg.req.Password, "New account password: ", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			req := cfg.req
			req.Password = password

			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				acc, err := c.CreateAccount(ctx, &req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), acc)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.req.Login, "login", "l", "", "login")
	f.StringVarP(&cfg.req.Password, "password", "p", "", "password (prompted when omitted)")
	f.StringVarP(&cfg.req.DisplayName, "name", "n", "", "display name")
	f.IntVarP(&cfg.req.Gender, "gender", "g", 0, "gender: 0 unspecified, 1 male, 2 female")
	f.StringVarP(&cfg.req.Birthday, "birthday", "b", "", "birthday, YYYY-MM-DD")
	f.BoolVar(&cfg.req.IsAdmin, "admin", false, "grant administrator rights")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

type updateConfig struct {
	name     string
	gender   int
	birthday string
}

func newUpdateCmd(a *App) *cobra.Command {
	cfg := &updateConfig{}

	cmd := &cobra.Command{
		Use:   "update <account-id>",
		Short: "Update display name, gender or birthday",
		Long:  `Update the profile of an account. Only the flags given are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &api.UpdateProfileRequest{ID: args[0]}
			f := cmd.Flags()
			if f.Changed("name") {
				req.DisplayName = &cfg.name
			}
			if f.Changed("gender") {
				req.Gender = &cfg.gender
			}
			if f.Changed("birthday") {
				req.Birthday = &cfg.birthday
			}

			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				acc, err := c.UpdateProfile(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), acc)
			})
		},
	}

	cmd.Flags().StringVarP(&cfg.name, "name", "n", "", "display name")
	cmd.Flags().IntVarP(&cfg.gender, "gender", "g", 0, "gender: 0 unspecified, 1 male, 2 female")
	cmd.Flags().StringVarP(&cfg.birthday, "birthday", "b", "", "birthday, YYYY-MM-DD")

	return cmd
}

type passwdConfig struct {
	current string
	next    string
}

func newPasswdCmd(a *App) *cobra.Command {
	cfg := &passwdConfig{}

	cmd := &cobra.Command{
		Use:   "passwd <account-id>",
		Short: "Change the password of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := passwordOr(cfg.current, "Current password: ", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			next, err := passwordOr(cfg.next, "New password: ", cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				acc, err := c.ChangePassword(ctx, args[0], current, next)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), acc)
			})
		},
	}

	cmd.Flags().StringVar(&cfg.current, "current", "", "current password (prompted when omitted)")
	cmd.Flags().StringVar(&cfg.next, "new", "", "new password (prompted when omitted)")

	return cmd
}

func newRenameCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <account-id> <new-login>",
		Short: "Change the login of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				acc, err := c.ChangeLogin(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), acc)
			})
		},
	}
}

func newActiveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List active accounts (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				list, err := c.ListActive(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), nonNil(list))
			})
		},
	}
}

func newFindCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find <login>",
		Short: "Look up an account by login (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				acc, err := c.FindByLogin(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), acc)
			})
		},
	}
}

func newOlderThanCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "older-than <age>",
		Short: "List accounts at least <age> years old (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			age, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("age must be a whole number: %w", err)
			}
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				list, err := c.ListOlderThan(ctx, age)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), nonNil(list))
			})
		},
	}
}

func newDeleteCmd(a *App) *cobra.Command {
	var soft bool

	cmd := &cobra.Command{
		Use:   "delete <login>",
		Short: "Delete an account (admin only)",
		Long:  `Delete an account permanently, or revoke it with --soft so it can be recovered.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				if err := c.DeleteAccount(ctx, args[0], soft); err != nil {
					return err
				}
				cmd.Println("deleted")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&soft, "soft", false, "revoke instead of removing")

	return cmd
}

func newRecoverCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recover <login>",
		Short: "Reactivate a revoked account (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				acc, err := c.Recover(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), acc)
			})
		},
	}
}

func nonNil(list []api.Account) []api.Account {
	if list == nil {
		return []api.Account{}
	}
	return list
}
