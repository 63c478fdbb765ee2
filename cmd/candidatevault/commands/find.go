package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <email>",
		Short: "Correlate sessions by email hash, without decryption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := svc.FindByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("No matching sessions")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}
