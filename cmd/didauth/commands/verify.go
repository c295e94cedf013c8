package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"didauth/internal/store"
)

// verify --in <bundle>: open a sealed challenge as the verifier.
func verifyCmd() *cobra.Command {
	var (
		inPath string
		expect string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-derive the session key from a bundle's DID and salt and open its challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := store.ReadEnvelope(inPath)
			if err != nil {
				return err
			}
			got, err := wire.Sessions.VerifyEnvelope(cmd.Context(), env, expect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", env.DIDAddress, got)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "sealed challenge bundle (CBOR)")
	cmd.Flags().StringVar(&expect, "expect", "", "fail unless the challenge equals this text")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
