package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hedera "github.com/hashgraph/hedera-sdk-go-core"
)

var (
	configFile string
	network    string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "hedera-cli",
	Short:   "hedera-cli - command-line client for a Hedera-style network",
	Long:    `hedera-cli drives the same Client facade this module's library exposes: ping a network, check a balance, or submit a transfer, all from one binary.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&network, "network", "testnet", "network preset to use when --conf is not given")
}

// buildClient resolves a Client from --conf if given, otherwise from
// --network.
func buildClient() (*hedera.Client, error) {
	if configFile != "" {
		return hedera.ClientFromConfigFile(configFile)
	}
	return hedera.ClientForName(network)
}