package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <session-id>",
		Short: "Decrypt and print a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := svc.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if loaded.Degraded() {
				fmt.Fprintf(os.Stderr, "warning: fields returned undecrypted: %v\n", loaded.DegradedFields)
			}
			out, err := json.MarshalIndent(loaded, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
