package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func cmdPolicy() *cobra.Command {
	c := &cobra.Command{
		Use:   "policy",
		Short: "Policy management",
	}
	c.AddCommand(cmdPolicyAdd(), cmdPolicyRemove(), cmdPolicyList())
	return c
}

func cmdPolicyAdd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <subject> <resource> <action>",
		Short: "Add a policy rule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := configuredEngine()
			if err != nil {
				return err
			}
			if err := engine.AddPolicy(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("added")
			return nil
		},
	}
}

func cmdPolicyRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <subject> <resource> <action>",
		Short: "Remove a policy rule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := configuredEngine()
			if err != nil {
				return err
			}
			if err := engine.RemovePolicy(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	}
}

func cmdPolicyList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List policy rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := configuredEngine()
			if err != nil {
				return err
			}
			rules, err := engine.Policies(cmd.Context())
			if err != nil {
				return err
			}
			for _, rule := range rules {
				fmt.Println(strings.Join(rule, ", "))
			}
			return nil
		},
	}
}
