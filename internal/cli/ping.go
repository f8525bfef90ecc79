package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	hedera "github.com/hashgraph/hedera-sdk-go-core"
)

var pingTimeout time.Duration

var pingCmd = &cobra.Command{
	Use:   "ping [node-account-id]",
	Short: "Check liveness of one node, or every registered node if none is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		if len(args) == 0 {
			if err := client.PingAll(ctx, pingTimeout); err != nil {
				return err
			}
			fmt.Println("pinged every node")
			return nil
		}

		nodeID, err := hedera.ParseAccountID(args[0])
		if err != nil {
			return fmt.Errorf("node account id: %w", err)
		}
		if err := client.Ping(ctx, nodeID, pingTimeout); err != nil {
			return err
		}
		fmt.Printf("%s is healthy\n", nodeID)
		return nil
	},
}

func init() {
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 10*time.Second, "per-node timeout")
	rootCmd.AddCommand(pingCmd)
}
