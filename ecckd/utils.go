package ecckd

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// checksum returns the first 4 bytes of the double SHA-256 of the input.
func checksum(in []byte) []byte {
	return chainhash.DoubleHashB(in)[:4]
}

// ripemd160 + sha256
func hash160(in []byte) []byte {
	a := sha256.Sum256(in)
	rmd := ripemd160.New()
	rmd.Write(a[:])
	return rmd.Sum(nil)
}

// paddedAppend appends src to dst left padded with zeros to size bytes.
func paddedAppend(size int, dst, src []byte) []byte {
	for i := len(src); i < size; i++ {
		dst = append(dst, 0)
	}
	return append(dst, src...)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
