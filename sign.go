package secp256k1

import (
	"crypto"
	"io"
)

type SignOptions struct {
	Hash crypto.Hash
}

func (s *SignOptions) HashFunc() crypto.Hash {
	return s.Hash
}

// Public returns the public key as a crypto.PublicKey.
func (privkey *PrivateKey) Public() crypto.PublicKey {
	return privkey.PubKey()
}

// Sign will sign the provided digest, returning the resulting DER signature.
// Signing is deterministic so rand is not read. [SignOptions] can be used to
// pass options.
func (privkey *PrivateKey) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	sig, err := DefaultContext().Sign(privkey, digest)
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil // DER
}
