package ecckd

import (
	"bytes"
	"encoding/binary"
	"math/big"

	secp256k1 "github.com/ModChain/secp256k1engine"
	"github.com/mr-tron/base58"
)

const (
	// chainCodeLen is the length of a BIP32 chain code.
	chainCodeLen = 32

	// serializedKeyLen is the length of a serialized public or private
	// extended key, without the checksum.
	serializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33

	// HardenedBit marks a child index as hardened.
	HardenedBit = 0x80000000
)

type ExtendedKey struct {
	Version     KeyVersion
	Depth       uint8
	Fingerprint [4]byte
	ChildNumber uint32 // ser32(i) for i in xi = xpar/i, with xi the key being serialized. (0x00000000 if master key)
	KeyData     []byte // 32 bytes ser256(k) for private keys, 33 bytes serP(K) for public keys
	ChainCode   []byte // 32 bytes, the chain code
}

// FromBitcoinSeed returns a master node for a bitcoin wallet
func FromBitcoinSeed(seed []byte) (*ExtendedKey, error) {
	return FromSeed(seed, []byte("Bitcoin seed"))
}

func FromSeed(seed, masterSecret []byte) (*ExtendedKey, error) {
	key, chainCode, err := hmacCKD(seed, masterSecret)
	if err != nil {
		return nil, err
	}

	res := &ExtendedKey{
		Version:     BitcoinMainnetPrivate,
		Depth:       0,
		Fingerprint: [4]byte{0, 0, 0, 0},
		ChildNumber: 0,
		KeyData:     key,
		ChainCode:   chainCode,
	}
	return res, nil
}

// FromPublicKey returns a public master node for the passed key and chain
// code.  Only non-hardened children can be derived from it.
func FromPublicKey(pubKey *secp256k1.PublicKey, chainCode []byte) (*ExtendedKey, error) {
	if len(chainCode) != chainCodeLen {
		return nil, ErrInvalidChainCode
	}
	if pubKey == nil || !pubKey.IsOnCurve() {
		return nil, ErrInvalidKey
	}

	return &ExtendedKey{
		Version:   BitcoinMainnetPublic,
		KeyData:   pubKey.SerializeCompressed(),
		ChainCode: append([]byte(nil), chainCode...),
	}, nil
}

func FromString(str string) (*ExtendedKey, error) {
	bin, err := base58.Decode(str)
	if err != nil {
		return nil, err
	}

	e := &ExtendedKey{}
	return e, e.UnmarshalBinary(bin)
}

func (k *ExtendedKey) IsPrivate() bool {
	return k.Version.IsPrivate()
}

// Child derives extended key at a given index i.
// If parent is private, then derived key is also private. If parent is public, then derived is public.
//
// If i >= HardenedBit, then hardened key is generated.
// You can only generate hardened keys from private parent keys.
// If you try generating hardened key form public parent key, ErrDerivingHardenedFromPublic is returned.
//
// There are four CKD (child key derivation) scenarios:
// 1) Private extended key -> Hardened child private extended key
// 2) Private extended key -> Non-hardened child private extended key
// 3) Public extended key -> Non-hardened child public extended key
// 4) Public extended key -> Hardened child public extended key (INVALID!)
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	_, child, err := k.childWithIL(i)
	return child, err
}

// childWithIL derives the child at index i and also returns the tweak IL that
// was added to the parent key.
func (k *ExtendedKey) childWithIL(i uint32) (*secp256k1.ModNScalar, *ExtendedKey, error) {
	if k.Depth == 0xff {
		return nil, nil, ErrMaxDepthExceeded
	}

	// A hardened child may not be created from a public extended key (Case #4).
	isChildHardened := i&HardenedBit == HardenedBit
	if !k.IsPrivate() && isChildHardened {
		return nil, nil, ErrDerivingHardenedFromPublic
	}

	parentPub, err := k.pubKeyBytes()
	if err != nil {
		return nil, nil, err
	}

	keyLen := 33
	seed := make([]byte, keyLen+4)
	if isChildHardened {
		// Case #1: 0x00 || ser256(parentKey) || ser32(i)
		copy(seed[1:], k.KeyData)
	} else {
		// Case #2 and #3: serP(parentPubKey) || ser32(i)
		copy(seed, parentPub)
	}
	binary.BigEndian.PutUint32(seed[keyLen:], i)

	il, chainCode, err := hmacCKD(seed, k.ChainCode)
	zeroBytes(seed)
	if err != nil {
		return nil, nil, err
	}

	child := &ExtendedKey{
		ChainCode:   chainCode,
		Depth:       k.Depth + 1,
		ChildNumber: i,
		Version:     k.Version,
	}
	// The fingerprint for the derived child is the first 4 bytes of parent's
	// HASH160.
	copy(child.Fingerprint[:], hash160(parentPub))

	if k.IsPrivate() {
		// Case #1 or #2: childKey = parse256(IL) + parentKey
		parent, err := secp256k1.ParsePrivKey(k.KeyData)
		if err != nil {
			return nil, nil, ErrInvalidKey
		}
		childKey, err := secp256k1.TweakAddPrivKey(parent, il)
		parent.Zero()
		if err != nil {
			return nil, nil, ErrInvalidKey
		}
		child.KeyData = childKey.Serialize()
		childKey.Zero()
	} else {
		// Case #3: childKey = serP(point(parse256(IL)) + parentKey)
		pubKey, err := secp256k1.ParsePubKey(k.KeyData)
		if err != nil {
			return nil, nil, err
		}
		childKey, err := secp256k1.TweakAddPubKey(pubKey, il)
		if err != nil {
			return nil, nil, ErrInvalidKey
		}
		child.KeyData = childKey.SerializeCompressed()
	}

	var ilScalar secp256k1.ModNScalar
	ilScalar.SetByteSlice(il)
	zeroBytes(il)
	return &ilScalar, child, nil
}

// Derive returns a derived child key at a given path
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	_, extKey, err := k.DeriveWithIL(path)
	return extKey, err
}

// DeriveWithIL returns the derived child key at a given path along with the
// sum modulo the group order of every IL tweak applied on the way.  Adding
// that sum to the private key of k yields the private key of the child, which
// lets the holder of a private key follow a derivation done on its public key.
func (k *ExtendedKey) DeriveWithIL(path []uint32) (*big.Int, *ExtendedKey, error) {
	var total secp256k1.ModNScalar
	extKey := k
	for _, i := range path {
		il, child, err := extKey.childWithIL(i)
		if err != nil {
			return nil, nil, ErrDerivingChild
		}
		total.Add(il)
		extKey = child
	}

	b := total.Bytes()
	return new(big.Int).SetBytes(b[:]), extKey, nil
}

// Public returns a new extended public key from a give extended private key.
// If the input extended key is already public, it will be returned unaltered.
func (k *ExtendedKey) Public() (*ExtendedKey, error) {
	// Already an extended public key.
	if !k.IsPrivate() {
		return k, nil
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	pub, err := k.pubKeyBytes()
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		Version:     k.Version.ToPublic(),
		KeyData:     pub,
		ChainCode:   k.ChainCode,
		Fingerprint: k.Fingerprint,
		Depth:       k.Depth,
		ChildNumber: k.ChildNumber,
	}, nil
}

// MarshalBinary encodes the key in standard format that can be base58 encoded for humans
func (k *ExtendedKey) MarshalBinary() ([]byte, error) {
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.ChildNumber)

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+4)
	serializedBytes = append(serializedBytes, k.Version[:]...)
	serializedBytes = append(serializedBytes, k.Depth)
	serializedBytes = append(serializedBytes, k.Fingerprint[:]...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.ChainCode...)
	if k.IsPrivate() {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = paddedAppend(32, serializedBytes, k.KeyData)
	} else {
		pub, err := k.pubKeyBytes()
		if err != nil {
			return nil, err
		}
		serializedBytes = append(serializedBytes, pub...)
	}

	checkSum := checksum(serializedBytes)
	serializedBytes = append(serializedBytes, checkSum...)
	return serializedBytes, nil
}

func (k *ExtendedKey) String() string {
	bin, err := k.MarshalBinary()
	if err != nil {
		return ""
	}
	return base58.Encode(bin)
}

// pubKeyBytes returns bytes for the serialized compressed public key associated
// with this extended key.
//
// When the extended key is already a public key, the key is simply returned as
// is since it's already in the correct form.  When the extended key is a
// private key, the public key is computed.
func (k *ExtendedKey) pubKeyBytes() ([]byte, error) {
	// Just return the key if it's already an extended public key.
	if !k.IsPrivate() {
		return k.KeyData, nil
	}

	privKey, err := secp256k1.ParsePrivKey(k.KeyData)
	if err != nil {
		return nil, ErrInvalidKey
	}
	defer privKey.Zero()
	return privKey.PubKey().SerializeCompressed(), nil
}

// PrivateKey returns the key data of a private extended key.
func (k *ExtendedKey) PrivateKey() (*secp256k1.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrNotPrivate
	}
	return secp256k1.ParsePrivKey(k.KeyData)
}

// PublicKey returns the public key of the extended key.
func (k *ExtendedKey) PublicKey() (*secp256k1.PublicKey, error) {
	pub, err := k.pubKeyBytes()
	if err != nil {
		return nil, err
	}
	return secp256k1.ParsePubKey(pub)
}

func (k *ExtendedKey) UnmarshalBinary(data []byte) error {
	if len(data) != serializedKeyLen+4 {
		return ErrInvalidKeyLen
	}

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)

	// Split the payload and checksum up and ensure the checksum matches.
	payload := data[:len(data)-4]
	checkSum := data[len(data)-4:]
	if !bytes.Equal(checkSum, checksum(payload)) {
		return ErrBadChecksum
	}

	// Deserialize each of the payload fields.
	var version KeyVersion
	copy(version[:], payload[:4])
	if !version.IsKnown() {
		return ErrUnknownVersion
	}
	depth := payload[4]
	var fingerprint [4]byte
	copy(fingerprint[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := append([]byte(nil), payload[13:45]...)
	keyData := append([]byte(nil), payload[45:78]...)

	// The key data is a private key if it starts with 0x00.  Serialized
	// compressed pubkeys either start with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate != version.IsPrivate() {
		return ErrInvalidPrivateFlag
	}

	if isPrivate {
		// Ensure the private key is valid.  It must be within the range
		// of the order of the secp256k1 curve and not be 0.
		keyData = keyData[1:]
		if !secp256k1.SecKeyVerify(keyData) {
			return ErrInvalidSeed
		}
	} else {
		// Ensure the public key parses correctly and is actually on the
		// secp256k1 curve.
		if _, err := secp256k1.ParsePubKey(keyData); err != nil {
			return err
		}
	}

	k.Version = version
	k.KeyData = keyData
	k.ChainCode = chainCode
	k.Fingerprint = fingerprint
	k.Depth = depth
	k.ChildNumber = childNumber
	return nil
}
