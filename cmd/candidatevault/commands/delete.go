package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Erase a session and its export artifacts (right to erasure)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Delete(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			fmt.Printf("Erased session %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "user_request", "erasure reason recorded in the audit log")
	return cmd
}
