package cryptoutil

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePrivateKey(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		privateKey, err := GeneratePrivateKey()
		require.NoError(t, err)
		assert.Len(t, privateKey, PrivateKeyLength)
		assert.True(t, IsValidPrivateKey(privateKey))
		seen[hex.EncodeToString(privateKey)] = struct{}{}
	}
	assert.Len(t, seen, 10)
}

func TestIsValidPrivateKey(t *testing.T) {
	curveOrder, _ := hex.DecodeString(
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	)
	tests := []struct {
		key   []byte
		valid bool
	}{
		{bytes.Repeat([]byte{0x01}, 32), true},
		{bytes.Repeat([]byte{0x00}, 32), false},
		{curveOrder, false},
		{bytes.Repeat([]byte{0xff}, 32), false},
		{bytes.Repeat([]byte{0x01}, 31), false},
		{bytes.Repeat([]byte{0x01}, 33), false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidPrivateKey(tt.key))
	}
}

func TestDerivePublicKey(t *testing.T) {
	privateKey, err := GeneratePrivateKey()
	require.NoError(t, err)

	compressed, err := DerivePublicKey(privateKey, true)
	require.NoError(t, err)
	assert.Len(t, compressed, 33)
	assert.Contains(t, []byte{0x02, 0x03}, compressed[0])

	uncompressed, err := DerivePublicKey(privateKey, false)
	require.NoError(t, err)
	assert.Len(t, uncompressed, 65)
	assert.Equal(t, byte(0x04), uncompressed[0])

	_, err = DerivePublicKey(make([]byte, 32), true)
	assert.Equal(t, ErrInvalidPrivateKey, err)
}

func TestSignAndVerifyECDSA(t *testing.T) {
	privateKey, err := GeneratePrivateKey()
	require.NoError(t, err)
	publicKey, err := DerivePublicKey(privateKey, true)
	require.NoError(t, err)
	hash := Sha256([]byte("oranges"))

	sig, err := SignECDSA(hash, privateKey)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(sig), 72)
	assert.True(t, VerifyECDSA(sig, publicKey, hash))

	otherHash := Sha256([]byte("apples"))
	assert.False(t, VerifyECDSA(sig, publicKey, otherHash))
}

func TestSignECDSACompact(t *testing.T) {
	privateKey, err := GeneratePrivateKey()
	require.NoError(t, err)
	publicKey, err := DerivePublicKey(privateKey, true)
	require.NoError(t, err)
	hash := Sha256([]byte("oranges"))

	compactSig, err := SignECDSACompact(hash, privateKey)
	require.NoError(t, err)
	require.Len(t, compactSig, 64)

	// the R||S payload must verify once rebuilt as a signature
	var r, s btcec.ModNScalar
	require.False(t, r.SetByteSlice(compactSig[:32]))
	require.False(t, s.SetByteSlice(compactSig[32:]))
	pubkey, err := btcec.ParsePubKey(publicKey)
	require.NoError(t, err)
	assert.True(t, ecdsa.NewSignature(&r, &s).Verify(hash, pubkey))
}

func TestFailingSignECDSA(t *testing.T) {
	privateKey, _ := GeneratePrivateKey()
	tests := []struct {
		hash []byte
		key  []byte
		err  error
	}{
		{make([]byte, 31), privateKey, ErrInvalidHash},
		{nil, privateKey, ErrInvalidHash},
		{make([]byte, 32), make([]byte, 32), ErrInvalidPrivateKey},
		{make([]byte, 32), nil, ErrInvalidPrivateKey},
	}
	for _, tt := range tests {
		_, err := SignECDSA(tt.hash, tt.key)
		assert.Equal(t, tt.err, err)
	}
}

func TestSignAndVerifySchnorr(t *testing.T) {
	privateKey, err := GeneratePrivateKey()
	require.NoError(t, err)
	xOnly, err := XOnlyPublicKey(privateKey)
	require.NoError(t, err)
	assert.Len(t, xOnly, 32)

	hash := Sha256([]byte("taproot"))
	sig, err := SignSchnorr(hash, privateKey)
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.True(t, VerifySchnorr(sig, xOnly, hash))
	assert.False(t, VerifySchnorr(sig, xOnly, Sha256([]byte("other"))))
}

func TestTweakKeypairXOnly(t *testing.T) {
	privateKey, err := GeneratePrivateKey()
	require.NoError(t, err)

	tweaked, err := TweakKeypairXOnly(privateKey, nil)
	require.NoError(t, err)
	assert.Len(t, tweaked, 32)
	assert.True(t, IsValidPrivateKey(tweaked))
	assert.NotEqual(t, privateKey, tweaked)

	// the tweak commits to the internal key, so it must be deterministic
	again, err := TweakKeypairXOnly(privateKey, nil)
	require.NoError(t, err)
	assert.Equal(t, tweaked, again)
}

func TestTweakAddPrivateKey(t *testing.T) {
	one := append(make([]byte, 31), 0x01)
	two := append(make([]byte, 31), 0x02)
	three := append(make([]byte, 31), 0x03)

	sum, err := TweakAddPrivateKey(one, two)
	require.NoError(t, err)
	assert.Equal(t, three, sum)

	// addition must be modulo the curve order, not byte-wise: adding
	// N-1 to 2 wraps around to 1
	nMinusOne, _ := hex.DecodeString(
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
	)
	wrapped, err := TweakAddPrivateKey(two, nMinusOne)
	require.NoError(t, err)
	assert.Equal(t, one, wrapped)

	_, err = TweakAddPrivateKey(one, make([]byte, 31))
	assert.Equal(t, ErrInvalidTweak, err)
}

func TestHashes(t *testing.T) {
	// abc vectors
	msg := []byte("abc")
	assert.Equal(
		t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(Sha256(msg)),
	)
	assert.Equal(
		t,
		"4f8b42c22dd3729b519ba6f68d2da7cc5b2d606d05daed5ad5128cc03e6c6358",
		hex.EncodeToString(Hash256(msg)),
	)
	assert.Equal(
		t,
		"8eb208f7e05d987a9b044a8e98c6b087f15a0bfc",
		hex.EncodeToString(Ripemd160(msg)),
	)
	assert.Equal(
		t,
		"bb1be98c142444d7a56aa3981c3942a978e4dc33",
		hex.EncodeToString(Hash160(msg)),
	)
}
