package interfaces

import domaintypes "didauth/internal/domain/types"

// IdentityStore persists the local identity: the public record in clear and
// the mnemonic encrypted under a passphrase.
type IdentityStore interface {
	SaveIdentity(
		passphrase string,
		record domaintypes.IdentityRecord,
		mnemonic string,
	) error
	LoadRecord() (domaintypes.IdentityRecord, bool, error)
	LoadMnemonic(passphrase string) (string, error)
}
