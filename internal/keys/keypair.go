// Package keys generates throwaway ed25519 keypairs for devnet funding checks.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// Keypair is an ed25519 signing keypair with its base58 address.
type Keypair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Generate creates a fresh random keypair. The account it names does not
// exist on chain until funded.
func Generate() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}
	return &Keypair{Public: pub, Private: priv}, nil
}

// Address returns the base58-encoded public key, the form RPC endpoints
// accept for account queries.
func (k *Keypair) Address() string {
	return base58.Encode(k.Public)
}

// ParseAddress decodes a base58 address and validates its length.
func ParseAddress(s string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decoding address %q: %w", s, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("address %q: expected %d bytes, got %d", s, ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}
