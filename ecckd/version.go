package ecckd

// KeyVersion is the 4-byte prefix of a serialized extended key.  It selects
// the network and whether the key data is private.
type KeyVersion [4]byte

var (
	BitcoinMainnetPublic  = KeyVersion{0x04, 0x88, 0xb2, 0x1e} // xpub
	BitcoinMainnetPrivate = KeyVersion{0x04, 0x88, 0xad, 0xe4} // xprv
	BitcoinTestnetPublic  = KeyVersion{0x04, 0x35, 0x87, 0xcf} // tpub
	BitcoinTestnetPrivate = KeyVersion{0x04, 0x35, 0x83, 0x94} // tprv
)

// publicOf maps every private version to its public counterpart.
var publicOf = map[KeyVersion]KeyVersion{
	BitcoinMainnetPrivate: BitcoinMainnetPublic,
	BitcoinTestnetPrivate: BitcoinTestnetPublic,
}

// IsPrivate returns true if the version is for a private key
func (kv KeyVersion) IsPrivate() bool {
	_, ok := publicOf[kv]
	return ok
}

// IsKnown reports whether kv is one of the versions above.
func (kv KeyVersion) IsKnown() bool {
	if kv.IsPrivate() {
		return true
	}
	for _, pub := range publicOf {
		if pub == kv {
			return true
		}
	}
	return false
}

// ToPublic returns the public version on the same network.  Public and
// unknown versions are returned unchanged.
func (kv KeyVersion) ToPublic() KeyVersion {
	if pub, ok := publicOf[kv]; ok {
		return pub
	}
	return kv
}
