package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verdicthq/verdict/internal/credits"
)

func newCreditsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Show your remaining evaluation credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ledger := credits.NewLedger(a.client.FetchCredits)
			balance, err := ledger.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching credit balance: %w", err)
			}

			fmt.Printf("Credits: %d\n", balance)
			if balance == 0 {
				fmt.Println("Deep evaluations need at least one credit. Short evaluations stay free.")
			}
			return nil
		},
	}
	return cmd
}
