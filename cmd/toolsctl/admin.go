package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/client"
	"github.com/spf13/cobra"
)

func adminCmd(application *app) *cobra.Command {
	var users bool

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Show the admin panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := "/admin"
			if users {
				location = "/admin?tab=users"
			}
			_, err := application.shell.Navigate(cmd.Context(), location)
			return err
		},
	}
	cmd.Flags().BoolVar(&users, "users", false, "show the users tab")

	cmd.AddCommand(adminToolCmd(application), adminUserCmd(application))
	return cmd
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func toolInputFlags(cmd *cobra.Command, input *client.ToolInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "name of the tool")
	cmd.Flags().StringVar(&input.Route, "route", "", "route the tool is served at")
	cmd.Flags().StringVar(&input.Description, "description", "", "description of the tool")
	cmd.Flags().StringVar(&input.Version, "version", "", "version of the tool")
	cmd.Flags().StringVar(&input.Icon, "icon", "", "icon of the tool")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("route")
}

func adminToolCmd(application *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "Manage tools",
	}

	createInput := new(client.ToolInput)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := application.shell.CreateTool(cmd.Context(), createInput)
			return err
		},
	}
	toolInputFlags(create, createInput)

	updateInput := new(client.ToolInput)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the fields of a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = application.shell.UpdateTool(cmd.Context(), id, updateInput)
			return err
		},
	}
	toolInputFlags(update, updateInput)

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = application.shell.DeleteTool(cmd.Context(), id)
			return err
		},
	}

	cmd.AddCommand(create, update, remove)
	return cmd
}

func adminUserCmd(application *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	createInput := new(client.UserCreate)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := application.shell.CreateUser(cmd.Context(), createInput)
			return err
		},
	}
	create.Flags().StringVar(&createInput.Username, "username", "", "username of the new user")
	create.Flags().StringVar(&createInput.Password, "password", "", "password of the new user")
	create.Flags().BoolVar(&createInput.Admin, "admin", false, "grant admin permissions")
	create.Flags().BoolVar(&createInput.Active, "active", true, "allow the user to log in")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	var username, password string
	var admin, active bool
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			changes := new(client.UserUpdate)
			flags := cmd.Flags()
			if flags.Changed("username") {
				changes.Username = &username
			}
			if flags.Changed("password") {
				changes.Password = &password
			}
			if flags.Changed("admin") {
				changes.Admin = &admin
			}
			if flags.Changed("active") {
				changes.Active = &active
			}
			_, err = application.shell.UpdateUser(cmd.Context(), id, changes)
			return err
		},
	}
	update.Flags().StringVar(&username, "username", "", "new username")
	update.Flags().StringVar(&password, "password", "", "new password")
	update.Flags().BoolVar(&admin, "admin", false, "whether the user is an admin")
	update.Flags().BoolVar(&active, "active", true, "whether the user may log in")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = application.shell.DeleteUser(cmd.Context(), id)
			return err
		},
	}

	cmd.AddCommand(create, update, remove)
	return cmd
}
