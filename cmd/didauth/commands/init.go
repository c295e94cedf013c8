package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate an identity and store its mnemonic securely",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			rec, mnemonic, err := wire.Identity.GenerateIdentity(passphrase)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Identity created.\nDID: %s\n", rec.DID)
			fmt.Fprintf(out, "Mnemonic (write it down, it is shown once):\n%s\n", mnemonic)
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <word>...",
		Short: "Restore an identity from its mnemonic",
		Args:  cobra.MinimumNArgs(12),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			rec, err := wire.Identity.ImportIdentity(passphrase, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Identity imported.\nDID: %s\n", rec.DID)
			return nil
		},
	}
}
