// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

func hexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

const (
	secHex       = "67E56582298859DDAE725F972992A07C6C4FB9F62A8FFF58CE3CA926A1063530"
	badSecHex    = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF"
	testingHex   = "CF80CD8AED482D5D1527D7DC72FCEFF84E6326592848447D2DC0B0E87DFC9A90"
	tweakHex     = "3982F19BEF1615BCCFBB05E321C10E1D4CBA3DF0E841C2E41EEB6016347653C3"
	otherPubHex  = "040A629506E1B65CD9D2E0BA9C75DF9C4FED0DB16DC9625ED14397F0AFC836FAE595DC53F8B0EFE61E703075BD9B143BAC75EC0E19F82A2208CAEB32BE53414C40"
	derivedPub   = "04C591A8FF19AC9C4E4E5793673B83123437E975285E7B442F4EE2654DFFCA5E2D2103ED494718C697AC9AEBCFD19612E224DB46661011863ED2FC54E71861E2A6"
	derivedComp  = "02C591A8FF19AC9C4E4E5793673B83123437E975285E7B442F4EE2654DFFCA5E2D"
	verifySigHex = "3044022079BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F817980220294F14E883B3F525B5367756C2A11EF6CF84B730B36C17CB0C56F0AAB2C98589"
)

func TestVerify(t *testing.T) {
	data := hexToBytes(testingHex)
	sig := hexToBytes(verifySigHex)
	pub := hexToBytes(otherPubHex)
	require.True(t, Verify(data, sig, pub))

	// One bit off in the digest.
	data[31] ^= 0x01
	require.False(t, Verify(data, sig, pub))

	// Malformed inputs are a plain false.
	require.False(t, Verify(data[:31], sig, pub))
	require.False(t, Verify(hexToBytes(testingHex), sig[:len(sig)-1], pub))
	require.False(t, Verify(hexToBytes(testingHex), sig, pub[:64]))
}

func TestVerifyForeignSignature(t *testing.T) {
	// Produced by a signer using a different nonce derivation; it must still
	// verify against the derived public key.
	data := hexToBytes(testingHex)
	sig := hexToBytes("3045022100F51D069AA46EDB4E2E77773FE364AA2AF6818AF733EA542CFC4D546640A58D8802204F1C442AC9F26F232451A0C3EE99F6875353FC73902C68055C19E31624F687CC")
	require.True(t, Verify(data, sig, hexToBytes(derivedPub)))
	require.False(t, Verify(data, sig, hexToBytes(otherPubHex)))
}

func TestSecKeyVerify(t *testing.T) {
	require.True(t, SecKeyVerify(hexToBytes(secHex)))
	require.False(t, SecKeyVerify(hexToBytes(badSecHex)))
	require.False(t, SecKeyVerify(make([]byte, 32)))
	require.False(t, SecKeyVerify(hexToBytes(secHex)[:31]))
	// n itself.
	require.False(t, SecKeyVerify(hexToBytes("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")))
	require.True(t, SecKeyVerify(hexToBytes("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364140")))
}

func TestComputePubkey(t *testing.T) {
	sec := hexToBytes(secHex)
	require.Equal(t, derivedPub, hexUpper(ComputePubkey(sec, false)))
	require.Equal(t, derivedComp, hexUpper(ComputePubkey(sec, true)))
	require.Empty(t, ComputePubkey(hexToBytes(badSecHex), false))
	require.Empty(t, ComputePubkey(make([]byte, 32), true))
}

func TestSign(t *testing.T) {
	data := hexToBytes(testingHex)
	sec := hexToBytes(secHex)

	sig := Sign(data, sec)
	require.Equal(t, "30440220182A108E1448DC8F1FB467D06A0F3BB8EA0533584CB954EF8DA112F1D60E39A202201C66F36DA211C087F3AF88B50EDF4F9BDAA6CF5FD6817E74DCA34DB12390C6E9", hexUpper(sig))
	require.True(t, Verify(data, sig, hexToBytes(derivedPub)))
	require.True(t, Verify(data, sig, hexToBytes(derivedComp)))

	// Deterministic.
	require.Equal(t, sig, Sign(data, sec))

	require.Empty(t, Sign(data, hexToBytes(badSecHex)))
	require.Empty(t, Sign(data[:31], sec))
}

func TestPrivKeyTweaks(t *testing.T) {
	sec := hexToBytes(secHex)
	tweak := hexToBytes(tweakHex)

	require.Equal(t, "A168571E189E6F9A7E2D657A4B53AE99B909F7E712D1C23CED28093CD57C88F3", hexUpper(PrivKeyTweakAdd(sec, tweak)))
	require.Equal(t, "97F8184235F101550F3C71C927507651BD3F1CDB4A5A33B8986ACF0DEE20FFFC", hexUpper(PrivKeyTweakMul(sec, tweak)))

	bad := hexToBytes(badSecHex)
	require.Empty(t, PrivKeyTweakAdd(bad, tweak))
	require.Empty(t, PrivKeyTweakMul(bad, tweak))
	require.Empty(t, PrivKeyTweakMul(sec, make([]byte, 32)))
	require.Empty(t, PrivKeyTweakAdd(sec, bad))

	// sec + (n - sec) = 0.
	negSec := hexToBytes("981A9A7DD677A622518DA068D66D5F824E5F22F084B8A0E2F195B5662F300C11")
	require.Empty(t, PrivKeyTweakAdd(sec, negSec))
}

func TestPubKeyTweaks(t *testing.T) {
	pub := hexToBytes(otherPubHex)
	tweak := hexToBytes(tweakHex)

	require.Equal(t, "0411C6790F4B663CCE607BAAE08C43557EDC1A4D11D88DFCB3D841D0C6A941AF525A268E2A863C148555C48FB5FBA368E88718A46E205FABC3DBA2CCFFAB0796EF", hexUpper(PubKeyTweakAdd(pub, tweak, false)))
	require.Equal(t, "0311C6790F4B663CCE607BAAE08C43557EDC1A4D11D88DFCB3D841D0C6A941AF52", hexUpper(PubKeyTweakAdd(pub, tweak, true)))
	require.Equal(t, "04E0FE6FE55EBCA626B98A807F6CAF654139E14E5E3698F01A9A658E21DC1D2791EC060D4F412A794D5370F672BC94B722640B5F76914151CFCA6E712CA48CC589", hexUpper(PubKeyTweakMul(pub, tweak, false)))
	require.Equal(t, "03E0FE6FE55EBCA626B98A807F6CAF654139E14E5E3698F01A9A658E21DC1D2791", hexUpper(PubKeyTweakMul(pub, tweak, true)))

	require.Empty(t, PubKeyTweakMul(pub, make([]byte, 32), true))
	require.Empty(t, PubKeyTweakAdd(pub[:64], tweak, true))
}

func TestTweakAddCommutesWithPubkey(t *testing.T) {
	sec := hexToBytes(secHex)
	tweak := hexToBytes(tweakHex)

	for _, compressed := range []bool{false, true} {
		fromPriv := ComputePubkey(PrivKeyTweakAdd(sec, tweak), compressed)
		fromPub := PubKeyTweakAdd(ComputePubkey(sec, compressed), tweak, compressed)
		require.NotEmpty(t, fromPriv)
		require.Equal(t, fromPriv, fromPub)
	}
}

func TestPubKeyTweakAddToInfinity(t *testing.T) {
	// P + (n - sec)*G with P = sec*G is the point at infinity.
	pub := hexToBytes(derivedPub)
	negSec := hexToBytes("981A9A7DD677A622518DA068D66D5F824E5F22F084B8A0E2F195B5662F300C11")
	require.Empty(t, PubKeyTweakAdd(pub, negSec, true))
}

func TestRandomize(t *testing.T) {
	e := New()
	seed := hexToBytes("A441B15FE9A3CF56661190A0B93B9DEC7D04127288CC87250967CF3B52894D11")

	data := hexToBytes(testingHex)
	sec := hexToBytes(secHex)
	before := e.Sign(data, sec)
	pubBefore := e.ComputePubkey(sec, true)

	require.True(t, e.Randomize(seed))
	require.True(t, e.Randomize(seed))
	require.False(t, e.Randomize(seed[:31]))

	require.Equal(t, before, e.Sign(data, sec))
	require.Equal(t, pubBefore, e.ComputePubkey(sec, true))
	require.Equal(t, "A168571E189E6F9A7E2D657A4B53AE99B909F7E712D1C23CED28093CD57C88F3", hexUpper(e.PrivKeyTweakAdd(sec, hexToBytes(tweakHex))))
}

func TestDecompress(t *testing.T) {
	compressed := hexToBytes("0315EAB529E7D5EB637214EA8EC8ECE5DCD45610E8F4B7CC76A35A6FC27F5DD981")
	want := "0415EAB529E7D5EB637214EA8EC8ECE5DCD45610E8F4B7CC76A35A6FC27F5DD9817551BE3DF159C83045D9DFAC030A1A31DC9104082DB7719C098E87C1C4A36C19"

	once := Decompress(compressed)
	require.Equal(t, want, hexUpper(once))
	require.Equal(t, once, Decompress(once))

	// No root for this x.
	require.Empty(t, Decompress(hexToBytes("03EEFDEA4CDB677750A420FEE807EACF21EB9898AE79B9768766E4FAA04A2D4A34")))
	require.Empty(t, Decompress(compressed[:32]))
}

func TestIsValidPubKey(t *testing.T) {
	require.True(t, IsValidPubKey(hexToBytes("0456b3817434935db42afda0165de529b938cf67c7510168a51b9297b1ca7e4d91ea59c64516373dd2fe6acc79bb762718bc2659fa68d343bdb12d5ef7b9ed002b")))
	require.True(t, IsValidPubKey(hexToBytes("03de961a47a519c5c0fc8e744d1f657f9ea6b9a921d2a3bceb8743e1885f752676")))
	require.False(t, IsValidPubKey(hexToBytes("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF")))
	require.False(t, IsValidPubKey(nil))
}

func TestSchnorrSign(t *testing.T) {
	data := hexToBytes("5255683DA567900BFD3E786ED8836A4E7763C221BF1AC20ECE2A5171B9199E8A")
	sec := hexToBytes("12B004FFF7F4B69EF8650E767F18F11EDE158148B425660723B9F9A66E61F747")

	sig := SchnorrSign(data, sec)
	require.Equal(t, "2C56731AC2F7A7E7F11518FC7722A166B02438924CA9D8B4D111347B81D0717571846DE67AD3D913A8FDF9D8F3F73161A4C48AE81CB183B214765FEB86E255CE", hexUpper(sig))

	pub := ComputePubkey(sec, true)
	require.True(t, SchnorrVerify(data, sig, pub))

	for i := range sig {
		flipped := bytes.Clone(sig)
		flipped[i] ^= 0x01
		require.False(t, SchnorrVerify(data, flipped, pub), "byte %d", i)
	}

	require.Empty(t, SchnorrSign(data, hexToBytes(badSecHex)))
	require.Empty(t, SchnorrSign(data[:31], sec))
}

func TestSchnorrVerify(t *testing.T) {
	tests := []struct {
		data, sig, pub string
		want           bool
	}{{
		data: "0000000000000000000000000000000000000000000000000000000000000000",
		sig:  "787A848E71043D280C50470E8E1532B2DD5D20EE912A45DBDD2BD1DFBF187EF67031A98831859DC34DFFEEDDA86831842CCD0079E1F92AF177F7F22CC1DCED05",
		pub:  "0279BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798",
		want: true,
	}, {
		data: "243F6A8885A308D313198A2E03707344A4093822299F31D0082EFA98EC4E6C89",
		sig:  "2A298DACAE57395A15D0795DDBFD1DCB564DA82B0F269BC70A74F8220429BA1D1E51A22CCEC35599B8F266912281F8365FFC2D035A230434A1A64DC59F7013FD",
		pub:  "02DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659",
		want: true,
	}, {
		data: "5E2D58D8B3BCDF1ABADEC7829054F90DDA9805AAB56C77333024B9D0A508B75C",
		sig:  "00DA9B08172A9B6F0466A2DEFD817F2D7AB437E0D253CB5395A963866B3574BE00880371D01766935B92D2AB4CD5C8A2A5837EC57FED7660773A05F0DE142380",
		pub:  "03FAC2114C2FBB091527EB7C64ECB11F8021CB45E8E7809D3C0938E4B8C0E5F84B",
		want: true,
	}, {
		// Public key not on the curve.
		data: "4DF3C3F68FCC83B27E9D42C90431A72499F17875C81A599B566C9889B9696703",
		sig:  "00000000000000000000003B78CE563F89A0ED9414F5AA28AD0D96D6795F9C6302A8DC32E64E86A333F20EF56EAC9BA30B7246D6D25E22ADB8C6BE1AEB08D49D",
		pub:  "03EEFDEA4CDB677750A420FEE807EACF21EB9898AE79B9768766E4FAA04A2D4A34",
		want: false,
	}}

	for i, test := range tests {
		got := SchnorrVerify(hexToBytes(test.data), hexToBytes(test.sig), hexToBytes(test.pub))
		require.Equal(t, test.want, got, "test #%d", i)
	}
}

func TestCreateECDHSecret(t *testing.T) {
	sec := hexToBytes(secHex)
	pub := hexToBytes(otherPubHex)
	require.Equal(t, "2A2A67007A926E6594AF3EB564FC74005B37A9C8AEF2033C4552051B5C87F043", hexUpper(CreateECDHSecret(sec, pub)))

	require.Empty(t, CreateECDHSecret(hexToBytes(badSecHex), pub))
	require.Empty(t, CreateECDHSecret(sec, pub[:33]))
}

func TestECDHAgreement(t *testing.T) {
	secA := sha256.Sum256([]byte("alice"))
	secB := sha256.Sum256([]byte("bob"))
	pubA := ComputePubkey(secA[:], false)
	pubB := ComputePubkey(secB[:], true)

	ab := CreateECDHSecret(secA[:], pubB)
	ba := CreateECDHSecret(secB[:], pubA)
	require.Len(t, ab, 32)
	require.Equal(t, ab, ba)
}

// TestConcurrentUse signs and verifies from many goroutines while the context
// is being randomized, checking every result stays the same.
func TestConcurrentUse(t *testing.T) {
	e := New()
	want := make(map[int][]byte)
	for i := 0; i < 16; i++ {
		sec := sha256.Sum256([]byte(fmt.Sprintf("key %d", i)))
		data := sha256.Sum256([]byte(fmt.Sprintf("msg %d", i)))
		want[i] = e.Sign(data[:], sec[:])
	}

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 32; i++ {
			seed := sha256.Sum256([]byte(fmt.Sprintf("seed %d", i)))
			if !e.Randomize(seed[:]) {
				return fmt.Errorf("randomize %d failed", i)
			}
		}
		return nil
	})
	for i := 0; i < 16; i++ {
		i := i
		g.Go(func() error {
			sec := sha256.Sum256([]byte(fmt.Sprintf("key %d", i)))
			data := sha256.Sum256([]byte(fmt.Sprintf("msg %d", i)))
			for j := 0; j < 8; j++ {
				sig := e.Sign(data[:], sec[:])
				if !bytes.Equal(sig, want[i]) {
					return fmt.Errorf("signature %d changed", i)
				}
				if !e.Verify(data[:], sig, e.ComputePubkey(sec[:], true)) {
					return fmt.Errorf("signature %d does not verify", i)
				}
				ssig := e.SchnorrSign(data[:], sec[:])
				if !e.SchnorrVerify(data[:], ssig, e.ComputePubkey(sec[:], false)) {
					return fmt.Errorf("schnorr signature %d does not verify", i)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 32; i++ {
		sec := sha256.Sum256([]byte(fmt.Sprintf("round trip key %d", i)))
		data := sha256.Sum256([]byte(fmt.Sprintf("round trip msg %d", i)))
		pub := ComputePubkey(sec[:], i%2 == 0)

		sig := Sign(data[:], sec[:])
		require.True(t, Verify(data[:], sig, pub))
		data[0] ^= 0x80
		require.False(t, Verify(data[:], sig, pub))
	}
}
