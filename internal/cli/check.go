package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	authz "github.com/TwigBush/authz-go"
)

func cmdCheck() *cobra.Command {
	var own bool

	c := &cobra.Command{
		Use:   "check <subject> <action> <resource>",
		Short: "Evaluate a permission against the configured policy",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			subject, action, resource := args[0], args[1], args[2]
			perm := authz.Permission{
				Action:     authz.Action(action),
				Resource:   resource,
				Possession: authz.PossessionAny,
			}
			if own {
				perm.Possession = authz.PossessionOwn
				// --own asserts ownership was established out of band
				perm.IsOwn = func(authz.RequestContext) (bool, error) { return true, nil }
			}
			if err := perm.Validate(); err != nil {
				return err
			}

			ev := authz.NewEvaluator(engine)
			allowed, err := ev.Decide(cmd.Context(), subject,
				[]authz.Permission{perm},
				authz.RequestContext{Subject: subject})
			if err != nil {
				return err
			}

			if !allowed {
				fmt.Println("deny")
				os.Exit(1)
			}
			fmt.Println("allow")
			return nil
		},
	}

	c.Flags().BoolVar(&own, "own", false, "check the ownership-qualified permission")
	return c
}
