package cryptox

import (
	"crypto/md5"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KeyDerivation selects how the AES key and IV are derived from the passphrase.
type KeyDerivation string

const (
	// DerivationEVP is OpenSSL's EVP_BytesToKey with MD5, one round and no
	// salt. Ciphertext produced this way matches what the legacy service
	// stored, so it is the default.
	DerivationEVP KeyDerivation = "evp"
	// DerivationArgon2 uses argon2id with a fixed, purpose-bound salt.
	DerivationArgon2 KeyDerivation = "argon2id"
)

const (
	keySize = 24 // AES-192
	ivSize  = 16
)

// argon2Salt is fixed so derivation stays deterministic for a passphrase.
var argon2Salt = []byte("myjar/mobile/aes-192-cbc")

func deriveKeyIV(passphrase []byte, d KeyDerivation) (key, iv []byte, err error) {
	var material []byte
	switch d {
	case DerivationEVP, "":
		material = evpBytesToKey(passphrase, keySize+ivSize)
	case DerivationArgon2:
		material = argon2.IDKey(passphrase, argon2Salt, 1, 64*1024, 4, keySize+ivSize)
	default:
		return nil, nil, fmt.Errorf("unknown key derivation %q", d)
	}
	return material[:keySize], material[keySize : keySize+ivSize], nil
}

// evpBytesToKey returns n bytes of D_1 || D_2 || ... where
// D_1 = MD5(pass) and D_i = MD5(D_{i-1} || pass).
func evpBytesToKey(passphrase []byte, n int) []byte {
	var (
		out  []byte
		prev []byte
	)
	for len(out) < n {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		prev = h.Sum(nil)
		out = append(out, prev...)
	}
	return out[:n]
}
