package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	ecs "github.com/ecsprotocol/ecs"
)

var resolverInfoCmd = &cobra.Command{
	Use:   "resolver-info <resolver-address>",
	Short: "Show the registry record for a resolver contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		info, err := client.ResolverInfo(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("label:      %s\n", info.Label)
		fmt.Printf("review:     %s\n", info.Review)
		fmt.Printf("updated at: %s (%s ago)\n",
			time.Unix(info.UpdatedAt, 0).UTC().Format(time.RFC3339),
			ecs.ResolverAge(info.UpdatedAt).Round(time.Second))
		return nil
	},
}

var resolverCredentialCmd = &cobra.Command{
	Use:   "resolver-credential <resolver-address> <credential-key>",
	Short: "Resolve a credential through the registry trust flow",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		value, err := client.ResolveCredentialFromResolver(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if value == nil {
			fmt.Println("<absent>")
			return nil
		}
		fmt.Println(*value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolverInfoCmd, resolverCredentialCmd)
}
