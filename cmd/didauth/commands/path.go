package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"didauth/internal/crypto"
	"didauth/internal/protocol/derivation"
)

func pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <path>",
		Short: "Parse a derivation path and report whether it is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, rest := derivation.ParseWithRemainder(args[0])
			out := cmd.OutOrStdout()
			for i, j := range p {
				fmt.Fprintf(out, "%d  %-11s %-20q %s\n", i, j.Kind, j.Value, crypto.Hex(j.ChainCode()))
			}
			if rest != "" {
				fmt.Fprintf(out, "unparsed: %q\n", rest)
			}
			fmt.Fprintf(out, "canonical: %s\n", derivation.String(p))
			fmt.Fprintf(out, "valid: %t\n", derivation.IsValid(p))
			return nil
		},
	}
}

func deriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive <path>",
		Short: "Derive the Ed25519 key pair at a path from the identity seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sk, err := wire.Identity.DeriveSubKey(passphrase, args[0])
			if err != nil {
				return err
			}
			defer crypto.Wipe(sk.PrivateKey)

			did, err := crypto.DIDKey(sk.PublicKey)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:       %s\n", sk.Path)
			fmt.Fprintf(out, "Public key: %s\n", crypto.Hex(sk.PublicKey))
			fmt.Fprintf(out, "did:key:    %s\n", did)
			return nil
		},
	}
}
