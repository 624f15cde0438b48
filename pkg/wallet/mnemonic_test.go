package wallet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMnemonic(t *testing.T) {
	tests := []struct {
		entropySize   int
		expectedWords int
	}{
		{128, 12},
		{160, 15},
		{192, 18},
		{224, 21},
		{256, 24},
	}
	for _, tt := range tests {
		mnemonic, err := NewMnemonic(NewMnemonicOpts{EntropySize: tt.entropySize})
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, tt.expectedWords, len(strings.Fields(mnemonic)))
		assert.Nil(t, ValidateMnemonic(mnemonic))
	}
}

func TestNewMnemonicBadEntropySize(t *testing.T) {
	tests := []int{0, 64, 100, 129, 288}
	for _, size := range tests {
		_, err := NewMnemonic(NewMnemonicOpts{EntropySize: size})
		assert.Equal(t, ErrInvalidEntropySize, err)
	}
}

func TestNewMnemonicFromEntropy(t *testing.T) {
	entropy := make([]byte, 16)
	mnemonic, err := NewMnemonicFromEntropy(entropy)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(
		t,
		"abandon abandon abandon abandon abandon abandon abandon abandon "+
			"abandon abandon abandon about",
		mnemonic,
	)
}

func TestEntropyRoundTrip(t *testing.T) {
	for _, size := range []int{16, 20, 24, 28, 32} {
		entropy := make([]byte, size)
		for i := range entropy {
			entropy[i] = byte(i * 7)
		}
		mnemonic, err := NewMnemonicFromEntropy(entropy)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := EntropyFromMnemonic(mnemonic)
		if err != nil {
			t.Fatal(err)
		}
		assert.True(t, bytes.Equal(entropy, decoded))
	}
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		mnemonic string
		err      error
	}{
		{
			mnemonic: "abandon abandon abandon abandon abandon abandon " +
				"abandon abandon abandon abandon abandon about",
			err: nil,
		},
		{
			// 11 words
			mnemonic: "abandon abandon abandon abandon abandon abandon " +
				"abandon abandon abandon abandon about",
			err: ErrInvalidWordCount,
		},
		{
			mnemonic: "",
			err:      ErrInvalidWordCount,
		},
		{
			mnemonic: "abandon abandon abandon abandon abandon abandon " +
				"abandon abandon abandon abandon abandon notaword",
			err: ErrInvalidWord,
		},
		{
			// valid words, wrong checksum
			mnemonic: "abandon abandon abandon abandon abandon abandon " +
				"abandon abandon abandon abandon abandon abandon",
			err: ErrInvalidChecksum,
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.err, ValidateMnemonic(tt.mnemonic))
	}
}

func TestValidateMnemonicChecksumBitFlip(t *testing.T) {
	words := strings.Fields(testMnemonic)

	// the last word of a 12 word mnemonic carries 7 entropy bits and the
	// 4 checksum bits; "about" (index 3) with one checksum bit flipped
	// yields the word at index 3^1, 3^2, 3^4 or 3^8
	for _, lastWord := range []string{"able", "ability", "abstract", "accident"} {
		flipped := append(append([]string{}, words[:11]...), lastWord)
		err := ValidateMnemonic(strings.Join(flipped, " "))
		assert.Equal(t, ErrInvalidChecksum, err)
	}
}
