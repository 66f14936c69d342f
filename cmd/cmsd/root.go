package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the cmsd CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmsd",
		Short: "CMS backend - accounts, sessions and access control",
		Long: `cmsd serves the account API of the academy CMS: registration, login,
password reset and SuperAdmin account management. Configuration is read
from the environment.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedSuperAdminCmd())

	return cmd
}
