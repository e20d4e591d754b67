package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/skybi/tools-sys/internal/session"
	"github.com/spf13/cobra"
)

func loginCmd(application *app) *cobra.Command {
	var username, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Tools-Sys API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if current := application.shell.Session(); current.Authenticated {
				_, err := application.shell.Navigate(cmd.Context(), session.LoginPath)
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				username = prompt(cmd, reader, "Username: ")
			}
			if password == "" {
				password = prompt(cmd, reader, "Password: ")
			}
			_, err := application.shell.Login(cmd.Context(), username, password, remember)
			return err
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username to log in with")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password to log in with (prompted if omitted)")
	cmd.Flags().BoolVar(&remember, "remember", false, "ask the API for a remembered login")
	return cmd
}

func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)
	line, _ := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func logoutCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := application.shell.Logout(cmd.Context())
			return err
		},
	}
}

func statusCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			current := application.shell.Session()
			location := "Session kept in memory only"
			if application.sessionPath != "" {
				location = "Session file: " + application.sessionPath
			}
			return application.renderer.Write(
				application.renderer.Nav(current),
				application.renderer.Status(current),
				application.renderer.Message(location),
			)
		},
	}
}
