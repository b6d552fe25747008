package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/state"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign out and manage account credentials",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" {
			email = prompt("Email")
		}
		if password == "" {
			password = prompt("Password")
		}

		ctx := cmd.Context()
		if err := app.session.Login(ctx, email, password); err != nil {
			if errors.Is(err, api.ErrEmailNotVerified) {
				return fmt.Errorf("email not verified yet, run 'paanictl auth verify-email' first")
			}
			return err
		}
		app.rec.Record(models.TopicSession, models.SessionEvent{
			Timestamp: time.Now().Unix(),
			Action:    "login",
			Role:      app.session.Role(),
		})
		fmt.Printf("Signed in as %s (%s)\n", email, app.session.Role())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and drop the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.session.Logout(cmd.Context()); err != nil {
			log.WithError(err).Warn("backend logout failed, local session cleared anyway")
		}
		app.rec.Record(models.TopicSession, models.SessionEvent{
			Timestamp: time.Now().Unix(),
			Action:    "logout",
		})
		fmt.Println("Signed out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the stored session is still valid",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		app.session.Check(cmd.Context())
		decision := state.Guard(app.session.Checking(), app.session.Authenticated())
		if decision == state.Allow {
			fmt.Printf("Signed in, role: %s\n", app.session.Role())
		} else {
			fmt.Println("Not signed in")
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		input := api.RegisterInput{}
		input.Email, _ = cmd.Flags().GetString("email")
		input.Password, _ = cmd.Flags().GetString("password")
		input.FirstName, _ = cmd.Flags().GetString("first-name")
		input.LastName, _ = cmd.Flags().GetString("last-name")
		if input.Email == "" {
			input.Email = prompt("Email")
		}
		if input.Password == "" {
			input.Password = prompt("Password")
		}

		if err := app.api.Register(cmd.Context(), input); err != nil {
			return err
		}
		fmt.Println("Account created, check your inbox for the verification code")
		return nil
	},
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email",
	Short: "Confirm the code sent after registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		email, _ := cmd.Flags().GetString("email")
		code, _ := cmd.Flags().GetString("code")
		if email == "" {
			email = prompt("Email")
		}
		if code == "" {
			code = prompt("Verification code")
		}
		if err := app.api.VerifyEmail(cmd.Context(), email, code); err != nil {
			return err
		}
		fmt.Println("Email verified, you can sign in now")
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset code",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			email = prompt("Email")
		}
		if err := app.api.ForgotPassword(cmd.Context(), email); err != nil {
			return err
		}
		fmt.Println("Reset code sent, check your inbox")
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password using the reset code",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		email, _ := cmd.Flags().GetString("email")
		code, _ := cmd.Flags().GetString("code")
		password, _ := cmd.Flags().GetString("password")
		if email == "" {
			email = prompt("Email")
		}
		if code == "" {
			code = prompt("Reset code")
		}
		ctx := cmd.Context()
		if err := app.api.VerifyResetCode(ctx, email, code); err != nil {
			return fmt.Errorf("reset code rejected: %w", err)
		}
		if password == "" {
			password = prompt("New password")
		}
		if err := app.api.ResetPassword(ctx, email, code, password); err != nil {
			return err
		}
		fmt.Println("Password updated")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")

	verifyEmailCmd.Flags().String("email", "", "account email")
	verifyEmailCmd.Flags().String("code", "", "verification code")

	forgotPasswordCmd.Flags().String("email", "", "account email")

	resetPasswordCmd.Flags().String("email", "", "account email")
	resetPasswordCmd.Flags().String("code", "", "reset code")
	resetPasswordCmd.Flags().String("password", "", "new password")

	authCmd.AddCommand(loginCmd, logoutCmd, statusCmd, registerCmd, verifyEmailCmd, forgotPasswordCmd, resetPasswordCmd)
	rootCmd.AddCommand(authCmd)
}
