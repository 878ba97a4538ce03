package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	authz "github.com/TwigBush/authz-go"
)

func cmdRole() *cobra.Command {
	c := &cobra.Command{
		Use:   "role",
		Short: "Role management",
	}
	c.AddCommand(cmdRoleAdd(), cmdRoleRemove(), cmdRoleList())
	return c
}

func cmdRoleAdd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <user> <role>",
		Short: "Grant a role to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := configuredEngine()
			if err != nil {
				return err
			}
			if err := engine.AddRoleForUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("granted %s to %s\n", args[1], args[0])
			return nil
		},
	}
}

func cmdRoleRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user> <role>",
		Short: "Revoke a role from a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := configuredEngine()
			if err != nil {
				return err
			}
			if err := engine.DeleteRoleForUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("revoked %s from %s\n", args[1], args[0])
			return nil
		},
	}
}

func cmdRoleList() *cobra.Command {
	return &cobra.Command{
		Use:   "list <user>",
		Short: "List a user's roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := configuredEngine()
			if err != nil {
				return err
			}
			roles, err := engine.RolesForUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(roles) == 0 {
				fmt.Println("(none)")
				return nil
			}
			fmt.Println(strings.Join(roles, "\n"))
			return nil
		},
	}
}

func configuredEngine() (authz.Engine, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return buildEngine(cfg)
}
