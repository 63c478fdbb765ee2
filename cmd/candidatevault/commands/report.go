package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the privacy compliance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := svc.Report(cmd.Context())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
