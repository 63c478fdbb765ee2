package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <session-id>",
		Short: "Produce a GDPR data-portability bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Export written to %s\n", result.Path)
			if result.PresignedURL != "" {
				fmt.Printf("Download URL (valid 15m): %s\n", result.PresignedURL)
			}
			return nil
		},
	}
}
