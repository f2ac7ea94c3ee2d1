package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gifcast/gifcast/theme"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in color themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range theme.Names() {
				suffix := ""
				if name == theme.DefaultName {
					suffix = " (default)"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, suffix); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
