package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"didauth/internal/crypto"
	"didauth/internal/services/session"
	"didauth/internal/store"
)

// start <challenge>: seal a challenge under a fresh session key.
func startCmd() *cobra.Command {
	var (
		useBiometric bool
		outPath      string
		deliver      bool
		selfCheck    bool
		showKey      bool
	)
	cmd := &cobra.Command{
		Use:   "start <challenge>",
		Short: "Seal a challenge under a fresh session key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := wire.Sessions.StartAuthentication(ctx, args[0], useBiometric)
			if err != nil {
				return fmt.Errorf("%s: %w", res.Error, err)
			}
			sd := res.SessionData
			defer wire.Sessions.CleanupSession(sd)

			out := cmd.OutOrStdout()
			if res.BiometricError != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "biometric unavailable (%s), used DID password\n", res.BiometricError)
			}
			fmt.Fprintf(out, "Session:    %s\n", sd.SessionID)
			fmt.Fprintf(out, "DID:        %s\n", sd.DIDAddress)
			fmt.Fprintf(out, "Key ID:     %s\n", sd.EncryptionKeyID)
			fmt.Fprintf(out, "Password:   %s\n", sd.PasswordSource)
			fmt.Fprintf(out, "Salt:       %s\n", crypto.Hex(sd.Salt[:]))
			fmt.Fprintf(out, "Nonce:      %s\n", crypto.Hex(sd.ChallengeNonce[:]))
			fmt.Fprintf(out, "Ciphertext: %s\n", crypto.Hex(res.EncryptedChallenge))
			if showKey {
				fmt.Fprintf(out, "Key:        %s\n", crypto.Hex(sd.EncryptionKey[:]))
			}

			env, err := session.Envelope(sd, res.EncryptedChallenge)
			if err != nil {
				return err
			}
			if outPath != "" {
				if err := store.WriteEnvelope(outPath, env); err != nil {
					return err
				}
				fmt.Fprintf(out, "Bundle written to %s\n", outPath)
			}
			if deliver {
				if err := wire.Relay.DeliverChallenge(ctx, env); err != nil {
					return err
				}
				fmt.Fprintln(out, "Delivered to relay")
			}
			if selfCheck {
				got, err := wire.Sessions.VerifySession(sd, res.EncryptedChallenge, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Self-check: %s (%s)\n", got, sd.State)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useBiometric, "biometric", false, "ask the biometric provider for the password")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the sealed challenge bundle (CBOR) to this file")
	cmd.Flags().BoolVar(&deliver, "send", false, "deliver the bundle through the relay")
	cmd.Flags().BoolVar(&selfCheck, "self-check", false, "open the sealed challenge again before exiting")
	cmd.Flags().BoolVar(&showKey, "show-key", false, "print the session key (debugging only)")
	return cmd
}
