package cryptoutil

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"golang.org/x/crypto/ripemd160"
)

const (
	// PrivateKeyLength is the byte length of a secp256k1 private key
	PrivateKeyLength = 32
	// HashLength is the byte length of the digests accepted by the
	// signing functions
	HashLength = 32
	// TweakLength is the byte length of a scalar tweak
	TweakLength = 32
)

var (
	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New(
		"private key must be a 32 byte scalar in range [1, N-1]",
	)
	// ErrInvalidHash ...
	ErrInvalidHash = errors.New("hash to sign must be 32 bytes")
	// ErrInvalidTweak ...
	ErrInvalidTweak = errors.New("tweak must be a 32 byte scalar")
	// ErrInvalidPublicKey ...
	ErrInvalidPublicKey = errors.New("public key must be in SEC1 format")
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("signature is not parsable")
)

// GeneratePrivateKey returns 32 random bytes suitable to be used as a
// secp256k1 private key. Drawing is retried until the scalar falls in the
// valid range, which happens with overwhelming probability at the first
// attempt.
func GeneratePrivateKey() ([]byte, error) {
	buf := make([]byte, PrivateKeyLength)
	for {
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		if IsValidPrivateKey(buf) {
			return buf, nil
		}
	}
}

// IsValidPrivateKey returns whether the given bytes are a valid secp256k1
// scalar, ie. 32 bytes long and in range [1, N-1].
func IsValidPrivateKey(privateKey []byte) bool {
	if len(privateKey) != PrivateKeyLength {
		return false
	}
	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(privateKey)
	return !overflow && !scalar.IsZero()
}

// DerivePublicKey returns the serialized public key of the given private
// key, either in compressed (33 bytes) or uncompressed (65 bytes) format.
func DerivePublicKey(privateKey []byte, compressed bool) ([]byte, error) {
	if !IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	_, pubkey := btcec.PrivKeyFromBytes(privateKey)
	if compressed {
		return pubkey.SerializeCompressed(), nil
	}
	return pubkey.SerializeUncompressed(), nil
}

// SignECDSA signs the given 32 byte hash and returns the signature in DER
// format (up to 72 bytes).
func SignECDSA(hash, privateKey []byte) ([]byte, error) {
	if len(hash) != HashLength {
		return nil, ErrInvalidHash
	}
	if !IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	prvkey, _ := btcec.PrivKeyFromBytes(privateKey)
	return ecdsa.Sign(prvkey, hash).Serialize(), nil
}

// SignECDSACompact signs the given 32 byte hash and returns the signature
// in compact 64 byte (R||S) format.
func SignECDSACompact(hash, privateKey []byte) ([]byte, error) {
	if len(hash) != HashLength {
		return nil, ErrInvalidHash
	}
	if !IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	prvkey, _ := btcec.PrivKeyFromBytes(privateKey)
	// SignCompact prepends a 1 byte recovery header to the R||S payload
	sig := ecdsa.SignCompact(prvkey, hash, true)
	return sig[1:], nil
}

// VerifyECDSA verifies a DER signature over the given hash against the
// given SEC1 serialized public key.
func VerifyECDSA(sig, publicKey, hash []byte) bool {
	if len(hash) != HashLength {
		return false
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	pubkey, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	return signature.Verify(hash, pubkey)
}

// SignSchnorr signs the given 32 byte hash with a BIP340 Schnorr signature
// (64 bytes).
func SignSchnorr(hash, privateKey []byte) ([]byte, error) {
	if len(hash) != HashLength {
		return nil, ErrInvalidHash
	}
	if !IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	prvkey, _ := btcec.PrivKeyFromBytes(privateKey)
	sig, err := schnorr.Sign(prvkey, hash)
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// VerifySchnorr verifies a BIP340 signature over the given hash against a
// 32 byte x-only public key.
func VerifySchnorr(sig, xOnlyPubKey, hash []byte) bool {
	if len(hash) != HashLength {
		return false
	}
	signature, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	pubkey, err := schnorr.ParsePubKey(xOnlyPubKey)
	if err != nil {
		return false
	}
	return signature.Verify(hash, pubkey)
}

// XOnlyPublicKey returns the 32 byte x-only public key of the given
// private key as defined by BIP340.
func XOnlyPublicKey(privateKey []byte) ([]byte, error) {
	if !IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	_, pubkey := btcec.PrivKeyFromBytes(privateKey)
	return schnorr.SerializePubKey(pubkey), nil
}

// TweakKeypairXOnly applies the taproot tweak to the keypair of the given
// private key and returns the tweaked private key. The tweak is the
// tagged hash of the x-only public key optionally committed to a script
// root, so with a nil scriptRoot this is the BIP86 key-path tweak.
func TweakKeypairXOnly(privateKey, scriptRoot []byte) ([]byte, error) {
	if !IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	prvkey, _ := btcec.PrivKeyFromBytes(privateKey)
	tweaked := txscript.TweakTaprootPrivKey(*prvkey, scriptRoot)
	return tweaked.Serialize(), nil
}

// TweakAddPrivateKey returns (privateKey + tweak) mod N, the child key
// step of BIP32 derivation. It fails if the resulting scalar is zero or if
// either operand is out of range.
func TweakAddPrivateKey(privateKey, tweak []byte) ([]byte, error) {
	if !IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	if len(tweak) != TweakLength {
		return nil, ErrInvalidTweak
	}
	var tweakScalar btcec.ModNScalar
	if overflow := tweakScalar.SetByteSlice(tweak); overflow {
		return nil, ErrInvalidTweak
	}
	var keyScalar btcec.ModNScalar
	keyScalar.SetByteSlice(privateKey)
	keyScalar.Add(&tweakScalar)
	if keyScalar.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	sum := keyScalar.Bytes()
	return sum[:], nil
}

// Sha256 returns the SHA-256 digest of the given buffer.
func Sha256(buf []byte) []byte {
	hash := sha256.Sum256(buf)
	return hash[:]
}

// Hash256 returns the double SHA-256 digest of the given buffer, used for
// txids and Base58Check checksums.
func Hash256(buf []byte) []byte {
	return Sha256(Sha256(buf))
}

// Ripemd160 returns the RIPEMD-160 digest of the given buffer.
func Ripemd160(buf []byte) []byte {
	h := ripemd160.New()
	h.Write(buf)
	return h.Sum(nil)
}

// Hash160 returns RIPEMD-160(SHA-256(buf)), the digest used for legacy and
// segwit v0 pubkey/script hashes.
func Hash160(buf []byte) []byte {
	return btcutil.Hash160(buf)
}
