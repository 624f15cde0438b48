package wallet

import (
	"strings"
	"sync"

	"github.com/vulpemventures/go-bip39"
)

// NewMnemonicOpts is the struct given to the NewMnemonic method
type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new mnemonic of the given entropy size as a
// space-separated list of words.
func NewMnemonic(opts NewMnemonicOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	entropy, err := bip39.NewEntropy(opts.EntropySize)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// NewMnemonicFromEntropy returns the mnemonic encoding the given entropy
// bytes, checksummed per BIP39.
func NewMnemonicFromEntropy(entropy []byte) (string, error) {
	bits := len(entropy) * 8
	if bits < 128 || bits > 256 || bits%32 != 0 {
		return "", ErrInvalidEntropySize
	}
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic checks the given mnemonic per BIP39 and reports the
// first defect found: a word count outside {12,15,18,21,24}, a word not
// belonging to the english word list, or a checksum mismatch.
func ValidateMnemonic(mnemonic string) error {
	words := strings.Fields(mnemonic)
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return ErrInvalidWordCount
	}

	list := wordList()
	for _, word := range words {
		if _, ok := list[word]; !ok {
			return ErrInvalidWord
		}
	}

	if _, err := bip39.EntropyFromMnemonic(strings.Join(words, " ")); err != nil {
		return ErrInvalidChecksum
	}
	return nil
}

// EntropyFromMnemonic decodes a valid mnemonic back to the entropy bytes
// it was generated from.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return bip39.EntropyFromMnemonic(mnemonic)
}

// NewSeedFromMnemonic derives the 64 byte seed from a mnemonic and
// optional passphrase with PBKDF2-HMAC-SHA512, 2048 rounds, salted with
// "mnemonic" + passphrase.
func NewSeedFromMnemonic(mnemonic, passphrase string) []byte {
	return bip39.NewSeed(mnemonic, passphrase)
}

var (
	wordListOnce sync.Once
	wordListMap  map[string]struct{}
)

func wordList() map[string]struct{} {
	wordListOnce.Do(func() {
		words := bip39.GetWordList()
		wordListMap = make(map[string]struct{}, len(words))
		for _, word := range words {
			wordListMap[word] = struct{}{}
		}
	})
	return wordListMap
}
