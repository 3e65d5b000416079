// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected.  It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// TestParsePubKey ensures that public keys are properly parsed according
// to SEC1 including both the positive and negative cases.
func TestParsePubKey(t *testing.T) {
	tests := []struct {
		name  string       // test description
		key   string       // hex encoded public key
		err   error        // expected error
		wantX string       // expected x coordinate
		wantY string       // expected y coordinate
		kind  PubKeyFormat // expected format
	}{{
		name:  "uncompressed ok",
		key:   "0411db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		err:   nil,
		wantX: "11db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5c",
		wantY: "b2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		kind:  PubKeyFormatUncompressed,
	}, {
		name: "uncompressed x changed (not on curve)",
		key:  "0415db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		err:  ErrPubKeyNotOnCurve,
		kind: PubKeyFormatUncompressed,
	}, {
		name: "uncompressed y changed (not on curve)",
		key:  "0411db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a4",
		err:  ErrPubKeyNotOnCurve,
		kind: PubKeyFormatUncompressed,
	}, {
		name: "uncompressed claims compressed",
		key:  "0311db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		err:  ErrPubKeyInvalidFormat,
		kind: PubKeyFormatUnknown,
	}, {
		name:  "uncompressed as hybrid ok (ybit = 1)",
		key:   "0711db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		err:   nil,
		wantX: "11db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5c",
		wantY: "b2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		kind:  PubKeyFormatHybrid,
	}, {
		name: "uncompressed as hybrid wrong oddness",
		key:  "0611db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		err:  ErrPubKeyMismatchedOddness,
		kind: PubKeyFormatHybrid,
	}, {
		name: "uncompressed x >= p",
		key:  "04fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2fb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
		err:  ErrPubKeyXTooBig,
		kind: PubKeyFormatUncompressed,
	}, {
		name: "uncompressed y >= p",
		key:  "0411db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffd2f",
		err:  ErrPubKeyYTooBig,
		kind: PubKeyFormatUncompressed,
	}, {
		name: "uncompressed wrong length",
		key:  "0411db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a300",
		err:  ErrPubKeyInvalidLen,
		kind: PubKeyFormatUnknown,
	}, {
		name:  "compressed ok (ybit = 0)",
		key:   "02ce0b14fb842b1ba549fdd675c98075f12e9c510f8ef52bd021a9a1f4809d3b4d",
		err:   nil,
		wantX: "ce0b14fb842b1ba549fdd675c98075f12e9c510f8ef52bd021a9a1f4809d3b4d",
		wantY: "0890ff84d7999d878a57bee170e19ef4b4803b4bdede64503a6ac352b03c8032",
		kind:  PubKeyFormatCompressed,
	}, {
		name:  "compressed ok (ybit = 1)",
		key:   "032689c7c2dab13309fb143e0e8fe396342521887e976690b6b47f5b2a4b7d448e",
		err:   nil,
		wantX: "2689c7c2dab13309fb143e0e8fe396342521887e976690b6b47f5b2a4b7d448e",
		wantY: "499dd7852849a38aa23ed9f306f07794063fe7904e0f347bc209fdddaf37691f",
		kind:  PubKeyFormatCompressed,
	}, {
		name: "compressed claims uncompressed",
		key:  "04ce0b14fb842b1ba549fdd675c98075f12e9c510f8ef52bd021a9a1f4809d3b4d",
		err:  ErrPubKeyInvalidFormat,
		kind: PubKeyFormatUnknown,
	}, {
		name: "compressed x not on curve",
		key:  "03EEFDEA4CDB677750A420FEE807EACF21EB9898AE79B9768766E4FAA04A2D4A34",
		err:  ErrPubKeyNotOnCurve,
		kind: PubKeyFormatCompressed,
	}, {
		name: "compressed x >= p",
		key:  "03fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
		err:  ErrPubKeyXTooBig,
		kind: PubKeyFormatCompressed,
	}, {
		name: "all 0xff",
		key:  "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF",
		err:  ErrPubKeyInvalidFormat,
		kind: PubKeyFormatUnknown,
	}, {
		name: "empty",
		key:  "",
		err:  ErrPubKeyInvalidLen,
		kind: PubKeyFormatUnknown,
	}}

	for _, test := range tests {
		pubKeyBytes := hexToBytes(test.key)
		if kind := PubKeyFormatOf(pubKeyBytes); kind != test.kind {
			t.Errorf("%s: unexpected format -- got %v, want %v", test.name,
				kind, test.kind)
		}

		pubKey, err := ParsePubKey(pubKeyBytes)
		if !errors.Is(err, test.err) {
			t.Errorf("%s mismatched e -- got %v, want %v", test.name, err,
				test.err)
			continue
		}
		if IsValidPubKey(pubKeyBytes) != (test.err == nil) {
			t.Errorf("%s: IsValidPubKey disagrees with ParsePubKey", test.name)
		}
		if err != nil {
			continue
		}

		// Ensure the x and y coordinates match the expected values upon
		// successful parse.
		wantX, wantY := new(FieldVal).setHex(test.wantX), new(FieldVal).setHex(test.wantY)
		if !pubKey.x.Equals(wantX) {
			t.Errorf("%s: mismatched x coordinate -- got %v, want %v",
				test.name, pubKey.x, wantX)
			continue
		}
		if !pubKey.y.Equals(wantY) {
			t.Errorf("%s: mismatched y coordinate -- got %v, want %v",
				test.name, pubKey.y, wantY)
			continue
		}
	}
}

// TestPubKeySerialize ensures that serializing public keys works as expected
// for all formats and that the serialized forms parse back to the same key.
func TestPubKeySerialize(t *testing.T) {
	pubKey, err := ParsePubKey(hexToBytes("0411db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		format PubKeyFormat
		want   string
	}{{
		format: PubKeyFormatUncompressed,
		want:   "0411db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
	}, {
		format: PubKeyFormatCompressed,
		want:   "0311db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5c",
	}, {
		format: PubKeyFormatHybrid,
		want:   "0711db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f999b8643f656b412a3",
	}}

	for _, test := range tests {
		got := pubKey.Serialize(test.format)
		if hex.EncodeToString(got) != test.want {
			t.Errorf("%v: unexpected serialization -- got %x, want %s",
				test.format, got, test.want)
			continue
		}
		parsed, err := ParsePubKey(got)
		if err != nil {
			t.Errorf("%v: failed to parse serialized key: %v", test.format, err)
			continue
		}
		if !parsed.IsEqual(pubKey) {
			t.Errorf("%v: round trip mismatch: %s", test.format,
				spew.Sdump(parsed))
		}
	}

	if pubKey.Serialize(PubKeyFormatUnknown) != nil {
		t.Error("unknown format produced a serialization")
	}
	x := pubKey.XBytes()
	if hex.EncodeToString(x[:]) != "11db93e1dcdb8a016b49840f8c53bc1eb68a382e97b1482ecad7b148a6909a5c" {
		t.Errorf("unexpected x bytes %x", x)
	}
}

// TestDecompressPubKey ensures decompression recovers the full point, is a
// pass through for uncompressed keys, and distinguishes keys not on the
// curve.
func TestDecompressPubKey(t *testing.T) {
	compressed := hexToBytes("0315EAB529E7D5EB637214EA8EC8ECE5DCD45610E8F4B7CC76A35A6FC27F5DD981")
	want := hexToBytes("0415EAB529E7D5EB637214EA8EC8ECE5DCD45610E8F4B7CC76A35A6FC27F5DD9817551BE3DF159C83045D9DFAC030A1A31DC9104082DB7719C098E87C1C4A36C19")

	got, err := DecompressPubKey(compressed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected decompression -- got %x, want %x", got, want)
	}

	again, err := DecompressPubKey(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(again, got) {
		t.Fatalf("decompressing an uncompressed key changed it: %x", again)
	}

	_, err = DecompressPubKey(hexToBytes("03EEFDEA4CDB677750A420FEE807EACF21EB9898AE79B9768766E4FAA04A2D4A34"))
	if !errors.Is(err, ErrPubKeyNotOnCurve) {
		t.Fatalf("unexpected error for x not on curve: %v", err)
	}
	if !IsDomainError(err) {
		t.Fatalf("not on curve is not a domain error: %v", err)
	}

	_, err = DecompressPubKey(compressed[:20])
	if !IsFormatError(err) {
		t.Fatalf("short key is not a format error: %v", err)
	}
}

// TestPubKeyFormatString ensures the formats have readable names.
func TestPubKeyFormatString(t *testing.T) {
	tests := []struct {
		in   PubKeyFormat
		want string
	}{
		{PubKeyFormatUnknown, "unknown"},
		{PubKeyFormatCompressed, "compressed"},
		{PubKeyFormatUncompressed, "uncompressed"},
		{PubKeyFormatHybrid, "hybrid"},
		{PubKeyFormat(0xff), "unknown"},
	}
	for i, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("#%d: got: %s want: %s", i, got, test.want)
		}
	}
}
