package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/agrilearn/agrilearn/internal/api"
)

func addAuth(topLevel *cobra.Command) {
	var password string

	login := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the session token locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			pw := password
			if pw == "" {
				pw, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			resp, err := e.client.Login(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}
			if err := e.sess.Login(resp.Token, resp.User); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", resp.User.Name)
			return nil
		},
	}
	login.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if !e.sess.IsLoggedIn() {
				fmt.Println("Not logged in")
				return nil
			}
			if err := e.sess.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}

	var (
		regPassword string
		regPhone    string
	)
	register := &cobra.Command{
		Use:   "register <name> <email>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			pw := regPassword
			if pw == "" {
				pw, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			resp, err := e.client.Register(cmd.Context(), api.RegisterRequest{
				Name:     args[0],
				Email:    args[1],
				Password: pw,
				Phone:    regPhone,
			})
			if err != nil {
				return err
			}
			if resp.Token != "" {
				if err := e.sess.Login(resp.Token, resp.User); err != nil {
					return err
				}
				fmt.Printf("Registered and logged in as %s\n", resp.User.Name)
				return nil
			}
			fmt.Println("Registered. Run 'agrilearn login' to sign in.")
			return nil
		},
	}
	register.Flags().StringVarP(&regPassword, "password", "p", "", "password (prompted when omitted)")
	register.Flags().StringVar(&regPhone, "phone", "", "phone number, digits only")
	_ = register.MarkFlagRequired("phone")

	forgot := &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a one-time password reset code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.client.ForgotPassword(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Reset code sent. Check your email, then run 'agrilearn reset-password'.")
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset-password <email> <otp>",
		Short: "Set a new password using a reset code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			pw, err := promptPassword("New password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if pw != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := e.client.ResetPassword(cmd.Context(), args[0], args[1], pw); err != nil {
				return err
			}
			fmt.Println("Password updated")
			return nil
		},
	}

	topLevel.AddCommand(login, logout, register, forgot, reset)
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
