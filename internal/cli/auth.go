package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and session commands",
	}

	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoAmICmd())

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, name, phone, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"email":    email,
				"password": password,
				"name":     name,
			}
			if phone != "" {
				req["phone"] = phone
			}
			if role != "" {
				req["role"] = role
			}

			var result AuthResult
			if err := client.Post(cmd.Context(), "/api/auth/register", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number in E.164 form")
	cmd.Flags().StringVar(&role, "role", "", "Role: user or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"email":    email,
				"password": password,
			}

			var result AuthResult
			if err := client.Post(cmd.Context(), "/api/auth/login", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(cmd.Context(), "/api/auth/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Logged out")
			return nil
		},
	}
}

func newAuthWhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account bound to the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result WhoAmIResult
			if err := client.Get(cmd.Context(), "/api/auth/whoami", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
