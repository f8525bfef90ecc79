package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	hedera "github.com/hashgraph/hedera-sdk-go-core"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <from-account> <to-account> <tinybars>",
	Short: "Submit a single hbar transfer, signed and paid by the operator",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		from, err := hedera.ParseAccountID(args[0])
		if err != nil {
			return fmt.Errorf("from account: %w", err)
		}
		to, err := hedera.ParseAccountID(args[1])
		if err != nil {
			return fmt.Errorf("to account: %w", err)
		}
		var amount int64
		if _, err := fmt.Sscanf(args[2], "%d", &amount); err != nil {
			return fmt.Errorf("amount: %w", err)
		}

		tx := hedera.NewTransferTransaction().
			AddHbarTransfer(from, hedera.HbarFromTinybars(-amount)).
			AddHbarTransfer(to, hedera.HbarFromTinybars(amount))

		if err := client.FreezeWith(tx); err != nil {
			return fmt.Errorf("freeze: %w", err)
		}

		resp, err := tx.Execute(context.Background(), client)
		if err != nil {
			return err
		}

		fmt.Printf("submitted %s to node %s\n", resp.TransactionID, resp.NodeID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
}
