package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"didauth/internal/crypto"
)

func didCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "did",
		Short: "Print the local DID and its fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := wire.Identity.Record()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "DID:         %s\n", rec.DID)
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.FingerprintString(string(rec.DID)))
			fmt.Fprintf(out, "Created:     %s\n", rec.Created().Format(time.RFC3339))
			return nil
		},
	}
}
