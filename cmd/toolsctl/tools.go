package main

import (
	"github.com/spf13/cobra"
)

func toolsCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := application.shell.Navigate(cmd.Context(), "/")
			return err
		},
	}
}

func toolCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tool <id>",
		Short: "Show a single tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := application.shell.Navigate(cmd.Context(), "/tools/"+args[0])
			return err
		},
	}
}
