package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Manage saved payment cards",
	}

	cmd.AddCommand(newPaymentListCmd())
	cmd.AddCommand(newPaymentAddCmd())
	cmd.AddCommand(newPaymentDeleteCmd())

	return cmd
}

func newPaymentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your cards (numbers are masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Payment
			if err := client.Get(cmd.Context(), "/api/users/payment", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPaymentAddCmd() *cobra.Command {
	var cardType, bank, number, name, expiration, securityCode string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a payment card",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"type":          cardType,
				"bank":          bank,
				"number":        number,
				"name":          name,
				"expiration":    expiration,
				"security_code": securityCode,
			}

			var result Payment
			if err := client.Post(cmd.Context(), "/api/users/payment", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&cardType, "type", "credit", "Card type: credit or debit")
	cmd.Flags().StringVar(&bank, "bank", "", "Issuing bank (required)")
	cmd.Flags().StringVar(&number, "number", "", "16-digit card number (required)")
	cmd.Flags().StringVar(&name, "name", "", "Cardholder name (required)")
	cmd.Flags().StringVar(&expiration, "expiration", "", "Expiry date as YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&securityCode, "cvv", "", "Security code (required)")
	for _, f := range []string{"bank", "number", "name", "expiration", "cvv"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newPaymentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), fmt.Sprintf("/api/users/payment/%d", id)); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Deleted payment %d", id))
			return nil
		},
	}
}
