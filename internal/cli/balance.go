package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	hedera "github.com/hashgraph/hedera-sdk-go-core"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <account-id>",
	Short: "Query an account's hbar balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		accountID, err := hedera.ParseAccountID(args[0])
		if err != nil {
			return fmt.Errorf("account id: %w", err)
		}

		balance, err := hedera.NewAccountBalanceQuery().
			SetAccountID(accountID).
			Execute(context.Background(), client)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d tinybar\n", accountID, balance.Balance.AsTinybar())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
