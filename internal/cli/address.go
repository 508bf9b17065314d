package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Manage saved delivery addresses",
	}

	cmd.AddCommand(newAddressListCmd())
	cmd.AddCommand(newAddressAddCmd())
	cmd.AddCommand(newAddressDeleteCmd())

	return cmd
}

func newAddressListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Address
			if err := client.Get(cmd.Context(), "/api/users/address", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newAddressAddCmd() *cobra.Command {
	var (
		name, description string
		lat, lng          float64
		isDefault         bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a delivery address",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":        name,
				"description": description,
				"lat":         lat,
				"lng":         lng,
				"is_default":  isDefault,
			}

			var result Address
			if err := client.Post(cmd.Context(), "/api/users/address", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Label such as Home or Office (required)")
	cmd.Flags().StringVar(&description, "description", "", "Delivery notes")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().BoolVar(&isDefault, "default", false, "Mark as the default address")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAddressDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your addresses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), fmt.Sprintf("/api/users/address/%d", id)); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Deleted address %d", id))
			return nil
		},
	}
}
