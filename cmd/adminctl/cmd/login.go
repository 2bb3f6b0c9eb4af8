package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate against the backend and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stderr, "Password: ")
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return errors.Wrap(err, "read password")
		}

		user, err := app.Session.Login(cmd.Context(), args[0], strings.TrimSpace(password))
		if err != nil {
			return errors.Wrap(err, "login failed")
		}

		fmt.Printf("Logged in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
		if len(user.Roles) > 0 {
			fmt.Printf("Roles: %s\n", strings.Join(user.Roles, ", "))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		app.Session.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if !app.Session.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}
		user := app.Session.CurrentUser()
		fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
		if len(user.Roles) > 0 {
			fmt.Printf("Roles: %s\n", strings.Join(user.Roles, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
