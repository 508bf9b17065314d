package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Browse and manage menu products",
	}

	cmd.AddCommand(newProductListCmd())
	cmd.AddCommand(newProductGetCmd())
	cmd.AddCommand(newProductCreateCmd())
	cmd.AddCommand(newProductDeleteCmd())

	return cmd
}

func newProductListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List menu products",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Product
			if err := client.Get(cmd.Context(), "/api/products", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newProductGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result Product
			if err := client.Get(cmd.Context(), fmt.Sprintf("/api/products/%d", id), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newProductCreateCmd() *cobra.Command {
	var (
		name, description, image, color string
		price, weight, calories          float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product (administrators only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":        name,
				"description": description,
				"price":       price,
				"weight":      weight,
				"calories":    calories,
			}
			if image != "" {
				req["image"] = image
			}
			if color != "" {
				req["color"] = color
			}

			var result Product
			if err := client.Post(cmd.Context(), "/api/products", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&image, "image", "", "Image URL")
	cmd.Flags().StringVar(&color, "color", "", "Display colour as #rrggbb")
	cmd.Flags().Float64Var(&price, "price", 0, "Base price")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in grams")
	cmd.Flags().Float64Var(&calories, "calories", 0, "Calories")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProductDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), fmt.Sprintf("/api/products/%d", id)); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Deleted product %d", id))
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
