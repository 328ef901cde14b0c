// Package cryptox implements the symmetric cipher that protects the mobile
// number at rest.
//
// Encryption is deterministic: the key and IV are derived from the
// passphrase alone, so a given plaintext always yields the same ciphertext
// under one passphrase. Stored data written by earlier deployments depends
// on this, and equality lookups on ciphertext stay possible.
package cryptox

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/dmitrijs2005/myjar/internal/filex"
)

// Encoding selects the text form of ciphertext.
type Encoding string

const (
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
)

// DefaultPassphraseFile is the file name used when no passphrase and no
// passphrase path are configured.
const DefaultPassphraseFile = "passphrase"

// generatedPassphraseSize is the number of random bytes in a generated
// passphrase, stored hex encoded.
const generatedPassphraseSize = 10 * 1024

// Options configures Initialize. Passphrase wins over everything else.
// Otherwise the passphrase is loaded from Source, or from a file at
// PassphrasePath, or from DefaultPassphraseFile inside StateDir.
type Options struct {
	Passphrase     string
	PassphrasePath string
	StateDir       string
	Derivation     KeyDerivation
	Source         KeySource
}

// Cipher is an initialized AES-192-CBC cipher. It is immutable and safe for
// concurrent use.
type Cipher struct {
	block    cipher.Block
	iv       []byte
	location string
}

// Initialize resolves the passphrase described by opts, generating and
// persisting one when the configured location is empty, and derives the
// cipher key from it. Failures to read or write key material wrap
// common.ErrConfiguration.
func Initialize(ctx context.Context, opts Options) (*Cipher, error) {
	passphrase, location, err := resolvePassphrase(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(passphrase)

	key, iv, err := deriveKeyIV(passphrase, opts.Derivation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	return &Cipher{block: block, iv: iv, location: location}, nil
}

func resolvePassphrase(ctx context.Context, opts Options) ([]byte, string, error) {
	if opts.Passphrase != "" {
		return []byte(opts.Passphrase), "", nil
	}

	src := opts.Source
	if src == nil {
		path := opts.PassphrasePath
		if path == "" {
			dir, err := filex.EnsureDir(opts.StateDir)
			if err != nil {
				return nil, "", fmt.Errorf("%w: state dir: %w", common.ErrConfiguration, err)
			}
			path = filepath.Join(dir, DefaultPassphraseFile)
		}
		src = NewFileKeySource(path)
	}

	passphrase, err := loadOrCreate(ctx, src)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", common.ErrConfiguration, src.Location(), err)
	}
	return passphrase, src.Location(), nil
}

func loadOrCreate(ctx context.Context, src KeySource) ([]byte, error) {
	passphrase, err := src.Read(ctx)
	if err == nil {
		return passphrase, nil
	}
	if !errors.Is(err, ErrNoPassphrase) {
		return nil, err
	}

	generated, err := common.MakeRandHexString(generatedPassphraseSize)
	if err != nil {
		return nil, err
	}
	if err := src.Write(ctx, []byte(generated)); err != nil {
		return nil, err
	}
	return []byte(generated), nil
}

// PassphraseLocation reports where the passphrase was loaded from, or an
// empty string when it was given explicitly.
func (c *Cipher) PassphraseLocation() string {
	return c.location
}

// Encrypt encrypts plaintext and returns it in the requested encoding.
func (c *Cipher) Encrypt(plaintext string, enc Encoding) (string, error) {
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, padded)

	switch enc {
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(out), nil
	case EncodingHex, "":
		return hex.EncodeToString(out), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}
}

// Decrypt reverses Encrypt. Input that was not produced with the current
// passphrase and algorithm yields an error wrapping common.ErrDecryption.
func (c *Cipher) Decrypt(ciphertext string, enc Encoding) (string, error) {
	var (
		raw []byte
		err error
	)
	switch enc {
	case EncodingBase64:
		raw, err = base64.StdEncoding.DecodeString(ciphertext)
	case EncodingHex, "":
		raw, err = hex.DecodeString(ciphertext)
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrDecryption, err)
	}

	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d", common.ErrDecryption, len(raw))
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(out, raw)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrDecryption, err)
	}
	return string(plain), nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, errors.New("bad padding")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("bad padding")
		}
	}
	return b[:len(b)-n], nil
}
