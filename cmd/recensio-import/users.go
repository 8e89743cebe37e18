package main

import (
	"strconv"

	"github.com/emzola/recensio/data"
	"github.com/spf13/cobra"
)

// usersCmd imports users. Imported users have no confirmation code and must
// go through signup before they can authenticate.
var usersCmd = &cobra.Command{
	Use:   "users [file]",
	Short: "Import users from a CSV file (columns: username,email,role,bio)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readCSVFile(args[0])
		if err != nil {
			return err
		}
		for _, record := range records {
			username, err := field(record, "username")
			if err != nil {
				return err
			}
			email, err := field(record, "email")
			if err != nil {
				return err
			}
			user := &data.User{
				Username: username,
				Email:    email,
				Bio:      record["bio"],
				Role:     record["role"],
			}
			if user.Role == "" {
				user.Role = data.RoleUser
			}
			user.Normalize()
			err = repo.GetOrCreateUser(user)
			if err != nil {
				return err
			}
		}
		logger.PrintInfo("users imported", map[string]string{
			"count": strconv.Itoa(len(records)),
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
