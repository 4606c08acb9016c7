package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	ecs "github.com/ecsprotocol/ecs"
	"github.com/ecsprotocol/ecs/logger"
)

var (
	rpcURL   string
	domain   string
	timeout  time.Duration
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ecs",
	Short: "Resolve credentials stored in ENS text records",
	Long: `ecs looks up small string credentials stored in ENS text records,
addressed by an ENS name or by a chain address plus coin-type tag.

The RPC endpoint is taken from --rpc, or from the ETH_NODE_URL environment
variable (a .env file in the working directory is honored).`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() {
	// a missing .env is fine, env vars still apply
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", "", "Ethereum RPC endpoint (default: ETH_NODE_URL env var)")
	rootCmd.PersistentFlags().StringVar(&domain, "domain", "", "root domain for credential lookups (default: ecs.eth)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "per-resolution timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "enable logging at this level (debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dial builds the library client from the shared flags.
func dial(ctx context.Context) (*ecs.ECS, error) {
	endpoint := rpcURL
	if endpoint == "" {
		endpoint = os.Getenv("ETH_NODE_URL")
	}
	if endpoint == "" {
		return nil, fmt.Errorf("no RPC endpoint: pass --rpc or set ETH_NODE_URL")
	}

	opts := []ecs.Option{ecs.WithTimeout(timeout)}
	if domain != "" {
		opts = append(opts, ecs.WithDomain(domain))
	}
	if logLevel != "" {
		opts = append(opts, ecs.WithLogger(logger.NewZapLogger(logLevel)))
	}
	return ecs.Dial(ctx, endpoint, opts...)
}
