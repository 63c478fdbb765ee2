package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentscout/candidatevault/internal/models"
	"github.com/talentscout/candidatevault/internal/vault"
)

// saveInput is the handover format from the conversation engine: the
// collected candidate snapshot plus the optional message transcript.
type saveInput struct {
	Candidate  models.CandidateRecord `json:"candidate"`
	Transcript []models.Message       `json:"transcript,omitempty"`
}

func saveCmd() *cobra.Command {
	var (
		inputFile string
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Persist a candidate record handed over by the intake bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(inputFile)
			if err != nil {
				return err
			}
			var input saveInput
			if err := json.Unmarshal(b, &input); err != nil {
				return fmt.Errorf("parse %s: %w", inputFile, err)
			}

			if sessionID == "" {
				sessionID = vault.NewSessionID()
			}
			if err := svc.Save(cmd.Context(), sessionID, &input.Candidate, input.Transcript); err != nil {
				return err
			}
			fmt.Printf("Saved session %s\n", sessionID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "candidate JSON file")
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id (generated when empty)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
