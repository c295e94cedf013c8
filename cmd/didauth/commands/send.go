package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"didauth/internal/store"
)

// send <bundle>: deliver a sealed challenge bundle through the relay.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <bundle>",
		Short: "Deliver a sealed challenge bundle through the relay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := store.ReadEnvelope(args[0])
			if err != nil {
				return err
			}
			if err := wire.Relay.DeliverChallenge(cmd.Context(), env); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s for %s\n", env.SessionID, env.DIDAddress)
			return nil
		},
	}
}
