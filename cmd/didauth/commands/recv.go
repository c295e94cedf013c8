package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"didauth/internal/domain"
)

// recv: fetch and verify challenges queued for a DID.
func recvCmd() *cobra.Command {
	var (
		did    string
		limit  int
		ack    bool
		expect string
	)
	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Fetch and verify challenges queued for a DID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target := domain.DID(did)
			if target == "" {
				cur, ok, err := wire.Identity.CurrentDID(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no local identity; pass --did")
				}
				target = cur
			}

			envs, err := wire.Relay.FetchChallenges(ctx, target, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, env := range envs {
				got, err := wire.Sessions.VerifyEnvelope(ctx, env, expect)
				if err != nil {
					fmt.Fprintf(out, "[%s] FAILED: %v\n", env.SessionID, err)
					continue
				}
				fmt.Fprintf(out, "[%s] %s\n", env.SessionID, got)
			}
			if ack && len(envs) > 0 {
				if err := wire.Relay.AckChallenges(ctx, target, len(envs)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&did, "did", "", "DID whose queue to read (default: local identity)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum envelopes to fetch (0 = all)")
	cmd.Flags().BoolVar(&ack, "ack", true, "drop fetched envelopes from the relay")
	cmd.Flags().StringVar(&expect, "expect", "", "fail envelopes whose challenge differs from this text")
	return cmd
}
