package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecsprotocol/ecs/types"
)

var (
	flagName     string
	flagAddress  string
	flagCoinType string
	asJSON       bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <credential-key>",
	Short: "Resolve one credential for a name or address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := identifierFromFlags()
		if err != nil {
			return err
		}

		ctx := context.Background()
		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		result, err := client.ResolveCredential(ctx, identifier, args[0], nil)
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

var lookupNameCmd = &cobra.Command{
	Use:   "lookup-name",
	Short: "Print the lookup name for a name or address without resolving",
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := identifierFromFlags()
		if err != nil {
			return err
		}
		lookupDomain := domain
		if lookupDomain == "" {
			lookupDomain = types.DefaultDomain
		}
		fmt.Println(types.ConstructLookupName(identifier, lookupDomain))
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <credential-key> <name-or-address>...",
	Short: "Resolve one credential for many names or addresses concurrently",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		requests := make([]types.CredentialRequest, 0, len(args)-1)
		for _, raw := range args[1:] {
			identifier, err := identifierFromRaw(raw)
			if err != nil {
				return err
			}
			requests = append(requests, types.CredentialRequest{Identifier: identifier, Key: key})
		}

		ctx := context.Background()
		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		results, err := client.ResolveCredentialsBatch(ctx, requests, nil)
		if err != nil {
			return err
		}
		for _, result := range results {
			if err := printResult(&result.ResolutionResult); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{resolveCmd, lookupNameCmd} {
		c.Flags().StringVar(&flagName, "name", "", "ENS name to look up")
		c.Flags().StringVar(&flagAddress, "address", "", "chain address to look up")
		c.Flags().StringVar(&flagCoinType, "coin-type", "", "coin-type tag for address lookups (default: 3c)")
	}
	resolveCmd.Flags().BoolVar(&asJSON, "json", false, "print the full result envelope as JSON")
	batchCmd.Flags().BoolVar(&asJSON, "json", false, "print the full result envelopes as JSON")

	rootCmd.AddCommand(resolveCmd, lookupNameCmd, batchCmd)
}

func identifierFromFlags() (types.CredentialIdentifier, error) {
	switch {
	case flagName != "" && flagAddress != "":
		return types.CredentialIdentifier{}, fmt.Errorf("--name and --address are mutually exclusive")
	case flagName != "":
		return types.NewNameIdentifier(flagName)
	case flagAddress != "":
		return types.NewAddressIdentifier(flagAddress, flagCoinType)
	default:
		return types.CredentialIdentifier{}, fmt.Errorf("pass --name or --address")
	}
}

// identifierFromRaw guesses the identifier shape: 40-hex strings (with or
// without 0x) are addresses on the default coin type, everything else is a
// name.
func identifierFromRaw(raw string) (types.CredentialIdentifier, error) {
	if identifier, err := types.NewAddressIdentifier(raw, ""); err == nil {
		return identifier, nil
	}
	return types.NewNameIdentifier(raw)
}

func printResult(result *types.ResolutionResult) error {
	if asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	switch {
	case result.Success:
		fmt.Printf("%s: %s\n", result.LookupName, *result.Value)
	case result.Error != "":
		fmt.Fprintf(os.Stderr, "%s: error: %s\n", result.LookupName, result.Error)
	default:
		fmt.Printf("%s: <absent>\n", result.LookupName)
	}
	return nil
}
