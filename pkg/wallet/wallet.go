package wallet

import (
	"errors"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed is null")
	// ErrNullTxHex ...
	ErrNullTxHex = errors.New("transaction hex must not be null")
	// ErrNullTxLookup ...
	ErrNullTxLookup = errors.New("transaction lookup service must not be null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullChangeAddress ...
	ErrNullChangeAddress = errors.New("change address must not be null")
	// ErrNullOutputAddress ...
	ErrNullOutputAddress = errors.New("output address must not be null")

	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidWordCount ...
	ErrInvalidWordCount = errors.New(
		"mnemonic must count 12, 15, 18, 21 or 24 words",
	)
	// ErrInvalidWord ...
	ErrInvalidWord = errors.New("mnemonic contains a word not in the word list")
	// ErrInvalidChecksum ...
	ErrInvalidChecksum = errors.New("mnemonic checksum does not match")
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrUnsupportedPurpose ...
	ErrUnsupportedPurpose = errors.New(
		"derivation path purpose must be one of 44', 49', 84', 86'",
	)
	// ErrInvalidOutputAddress ...
	ErrInvalidOutputAddress = errors.New("output address must be a valid address")
	// ErrInvalidChangeAddress ...
	ErrInvalidChangeAddress = errors.New("change address must be a valid address")
	// ErrInvalidFeeRate ...
	ErrInvalidFeeRate = errors.New("fee rate must be a positive amount of sat/vByte")

	// ErrEmptyUnspents ...
	ErrEmptyUnspents = errors.New("unspent list must not be empty")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("output list must not be empty")

	// ErrAmountBelowDust ...
	ErrAmountBelowDust = errors.New("output amount is below the dust limit")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("total input amount does not cover outputs and fee")
	// ErrUnsupportedScriptType ...
	ErrUnsupportedScriptType = errors.New(
		"previous output script type is not supported for signing",
	)
	// ErrPrivateKeyMismatch ...
	ErrPrivateKeyMismatch = errors.New(
		"number of private keys must match the number of tx inputs",
	)
	// ErrMissingUnspent ...
	ErrMissingUnspent = errors.New(
		"missing unspent for some tx input's previous output",
	)
	// ErrMissingDerivationPath ...
	ErrMissingDerivationPath = errors.New(
		"missing derivation path for some tx input's previous output script",
	)

	// ErrRbfNotEnabled ...
	ErrRbfNotEnabled = errors.New("no transaction input signals replaceability")
	// ErrInsufficientFeeBump ...
	ErrInsufficientFeeBump = errors.New(
		"new fee must be greater than the original transaction fee",
	)
	// ErrCannotBumpFee ...
	ErrCannotBumpFee = errors.New("no change output exists to absorb the fee bump")
	// ErrParentFeeAlreadySufficient ...
	ErrParentFeeAlreadySufficient = errors.New(
		"parent transaction fee already meets the target fee rate",
	)
	// ErrNoUnspentOutputs ...
	ErrNoUnspentOutputs = errors.New("parent transaction has no unspent outputs")
)

// Wallet holds the BIP39 mnemonic and the seed derived from it. It is
// created once and never mutated; every derivation or signing operation
// returns fresh values.
type Wallet struct {
	mnemonic string
	seed     []byte
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
	Passphrase  string
}

func (o NewWalletOpts) validate() error {
	if o.EntropySize == 0 {
		return nil
	}
	if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewWallet creates a new wallet with a freshly generated mnemonic of the
// given entropy size (128 bits when omitted).
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	entropySize := opts.EntropySize
	if entropySize == 0 {
		entropySize = 128
	}

	mnemonic, err := NewMnemonic(NewMnemonicOpts{EntropySize: entropySize})
	if err != nil {
		return nil, err
	}

	return &Wallet{
		mnemonic: mnemonic,
		seed:     NewSeedFromMnemonic(mnemonic, opts.Passphrase),
	}, nil
}

// NewWalletFromMnemonicOpts is the struct given to the
// NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	Mnemonic   string
	Passphrase string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	return ValidateMnemonic(o.Mnemonic)
}

// NewWalletFromMnemonic restores a wallet from an existing mnemonic and
// optional passphrase.
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Wallet{
		mnemonic: opts.Mnemonic,
		seed:     NewSeedFromMnemonic(opts.Mnemonic, opts.Passphrase),
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if len(w.seed) <= 0 {
		return ErrNullSeed
	}
	return ValidateMnemonic(w.mnemonic)
}

// Mnemonic is the getter for the wallet's mnemonic
func (w *Wallet) Mnemonic() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}
	return w.mnemonic, nil
}

// Seed is the getter for the wallet's seed
func (w *Wallet) Seed() ([]byte, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	seed := make([]byte, len(w.seed))
	copy(seed, w.seed)
	return seed, nil
}
