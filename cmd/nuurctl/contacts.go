package main

import (
	"github.com/jrsteele09/nuur-client/users"
	"github.com/spf13/cobra"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage emergency contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List emergency contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.GetContacts(cmd.Context())
		return printResult(cmd, env, err)
	},
}

var contactsAddCmd = &cobra.Command{
	Use:   "add NAME PHONE",
	Short: "Add an emergency contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, _ := cmd.Flags().GetInt("priority")
		nc := users.NewContact{
			ContactName:      args[0],
			PhoneNumber:      args[1],
			Email:            optionalString(cmd, "email"),
			RelationshipType: optionalString(cmd, "relationship"),
			Priority:         priority,
		}
		env, err := client.AddContact(cmd.Context(), nc)
		return printResult(cmd, env, err)
	},
}

var contactsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update an emergency contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := users.ContactUpdate{
			ContactName:      optionalString(cmd, "name"),
			PhoneNumber:      optionalString(cmd, "phone"),
			Email:            optionalString(cmd, "email"),
			RelationshipType: optionalString(cmd, "relationship"),
			Priority:         optional(cmd, "priority", cmd.Flags().GetInt),
			IsActive:         optional(cmd, "active", cmd.Flags().GetBool),
		}
		env, err := client.UpdateContact(cmd.Context(), args[0], upd)
		return printResult(cmd, env, err)
	},
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an emergency contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.DeleteContact(cmd.Context(), args[0])
		return printResult(cmd, env, err)
	},
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsListCmd, contactsAddCmd, contactsUpdateCmd, contactsDeleteCmd)

	contactsAddCmd.Flags().String("email", "", "contact email")
	contactsAddCmd.Flags().String("relationship", "", "relationship, e.g. family")
	contactsAddCmd.Flags().Int("priority", 1, "notification priority, 1 first")

	contactsUpdateCmd.Flags().String("name", "", "contact name")
	contactsUpdateCmd.Flags().String("phone", "", "phone number")
	contactsUpdateCmd.Flags().String("email", "", "contact email")
	contactsUpdateCmd.Flags().String("relationship", "", "relationship")
	contactsUpdateCmd.Flags().Int("priority", 1, "notification priority")
	contactsUpdateCmd.Flags().Bool("active", true, "whether the contact is notified")
}
