package main

import (
	"fmt"
	"os"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/users"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		lang, _ := cmd.Flags().GetString("language")
		reg := users.Registration{
			Email:             email,
			PhoneNumber:       phone,
			Password:          password(cmd),
			FirstName:         optionalString(cmd, "first-name"),
			LastName:          optionalString(cmd, "last-name"),
			PreferredLanguage: lang,
		}
		env, err := client.Register(cmd.Context(), reg)
		return printResult(cmd, env, err)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		u, err := client.SignIn(cmd.Context(), users.Credentials{Email: email, Password: password(cmd)})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", u.DisplayName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !session.Current().IsAuthenticated {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return nil
		}
		if err := client.SignOut(cmd.Context()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "backend logout failed: %v\n", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := session.Current()
		if !st.IsAuthenticated {
			return errors.ErrNotAuthenticated
		}
		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			env, err := client.GetProfile(cmd.Context())
			return printResult(cmd, env, err)
		}
		return printJSON(cmd, st.User)
	},
}

// password reads --password, falling back to NUUR_PASSWORD.
func password(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p
	}
	return os.Getenv("NUUR_PASSWORD")
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().String("email", "", "account email")
		c.Flags().String("password", "", "account password (default $NUUR_PASSWORD)")
		_ = c.MarkFlagRequired("email")
	}
	registerCmd.Flags().String("phone", "", "phone number")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().String("language", "en", "preferred language")
	_ = registerCmd.MarkFlagRequired("phone")

	whoamiCmd.Flags().Bool("remote", false, "fetch the profile from the backend")
}
