package main

import (
	"github.com/jrsteele09/nuur-client/users"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.GetProfile(cmd.Context())
		return printResult(cmd, env, err)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := users.ProfileUpdate{
			FirstName:         optionalString(cmd, "first-name"),
			LastName:          optionalString(cmd, "last-name"),
			PreferredLanguage: optionalString(cmd, "language"),
			PhoneNumber:       optionalString(cmd, "phone"),
		}
		env, err := client.UpdateProfile(cmd.Context(), upd)
		return printResult(cmd, env, err)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().String("first-name", "", "first name")
	profileUpdateCmd.Flags().String("last-name", "", "last name")
	profileUpdateCmd.Flags().String("language", "", "preferred language")
	profileUpdateCmd.Flags().String("phone", "", "phone number")
}
