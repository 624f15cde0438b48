package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/orangesats/orangesats-wallet/pkg/cryptoutil"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
)

// MasterKeyOpts is the struct given to the MasterKey method
type MasterKeyOpts struct {
	Network *chaincfg.Params
}

func (o MasterKeyOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// MasterKey returns the BIP32 root key of the wallet's seed. The network
// only selects the version bytes of the serialized key, not the key
// material itself.
func (w *Wallet) MasterKey(opts MasterKeyOpts) (*hdkeychain.ExtendedKey, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return hdkeychain.NewMaster(w.seed, opts.Network)
}

// ExtendedKeyOpts is the struct given to ExtendedPrivateKey and
// ExtendedPublicKey methods
type ExtendedKeyOpts struct {
	DerivationPath string
	Network        *chaincfg.Params
}

func (o ExtendedKeyOpts) validate() error {
	if _, err := ParseDerivationPath(o.DerivationPath); err != nil {
		return err
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// ExtendedPrivateKey returns the xprv in base58 format for the provided
// derivation path.
func (w *Wallet) ExtendedPrivateKey(opts ExtendedKeyOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	hdNode, err := w.deriveExtendedKey(opts.DerivationPath, opts.Network)
	if err != nil {
		return "", err
	}
	return hdNode.String(), nil
}

// ExtendedPublicKey returns the xpub in base58 format for the provided
// derivation path.
func (w *Wallet) ExtendedPublicKey(opts ExtendedKeyOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	hdNode, err := w.deriveExtendedKey(opts.DerivationPath, opts.Network)
	if err != nil {
		return "", err
	}
	xpub, err := hdNode.Neuter()
	if err != nil {
		return "", err
	}
	return xpub.String(), nil
}

// DeriveSigningKeyPairOpts is the struct given to DeriveSigningKeyPair method
type DeriveSigningKeyPairOpts struct {
	DerivationPath string
	Network        *chaincfg.Params
}

func (o DeriveSigningKeyPairOpts) validate() error {
	if _, err := ParseDerivationPath(o.DerivationPath); err != nil {
		return err
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// DeriveSigningKeyPair derives the key pair at the provided derivation
// path, walking the path left to right with hardened derivation for the
// components carrying the `'` suffix.
func (w *Wallet) DeriveSigningKeyPair(opts DeriveSigningKeyPairOpts) (
	*btcec.PrivateKey,
	*btcec.PublicKey,
	error,
) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	hdNode, err := w.deriveExtendedKey(opts.DerivationPath, opts.Network)
	if err != nil {
		return nil, nil, err
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	publicKey, err := hdNode.ECPubKey()
	if err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// DeriveAddressOpts is the struct given to DeriveAddress method
type DeriveAddressOpts struct {
	DerivationPath string
	Network        *chaincfg.Params
}

func (o DeriveAddressOpts) validate() error {
	path, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}
	purpose, hardened := path.Purpose()
	if !hardened {
		return ErrUnsupportedPurpose
	}
	switch purpose {
	case PurposeLegacy, PurposeNestedSegwit, PurposeNativeSegwit, PurposeTaproot:
	default:
		return ErrUnsupportedPurpose
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// DeriveAddress derives the key pair at the provided derivation path and
// encodes the public key to an address whose script type is selected by
// the path's purpose: 44'->P2PKH, 49'->P2SH-P2WPKH, 84'->P2WPKH,
// 86'->P2TR (BIP86 key-path only).
func (w *Wallet) DeriveAddress(opts DeriveAddressOpts) (
	*btcec.PrivateKey,
	string,
	error,
) {
	if err := opts.validate(); err != nil {
		return nil, "", err
	}

	prvkey, pubkey, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: opts.DerivationPath,
		Network:        opts.Network,
	})
	if err != nil {
		return nil, "", err
	}

	path, _ := ParseDerivationPath(opts.DerivationPath)
	purpose, _ := path.Purpose()

	script, err := scriptForPurpose(purpose, prvkey, pubkey)
	if err != nil {
		return nil, "", err
	}

	addr, err := scriptutil.AddressFromScript(script, opts.Network)
	if err != nil {
		return nil, "", err
	}
	return prvkey, addr, nil
}

// WIFOpts is the struct given to WIF method
type WIFOpts struct {
	DerivationPath string
	Network        *chaincfg.Params
}

// WIF exports the private key at the provided derivation path in wallet
// import format.
func (w *Wallet) WIF(opts WIFOpts) (string, error) {
	prvkey, _, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: opts.DerivationPath,
		Network:        opts.Network,
	})
	if err != nil {
		return "", err
	}
	wif, err := btcutil.NewWIF(prvkey, opts.Network, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

func (w *Wallet) deriveExtendedKey(
	strPath string, net *chaincfg.Params,
) (*hdkeychain.ExtendedKey, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}

	hdNode, err := hdkeychain.NewMaster(w.seed, net)
	if err != nil {
		return nil, err
	}

	path, _ := ParseDerivationPath(strPath)
	for _, step := range path {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, err
		}
	}
	return hdNode, nil
}

func scriptForPurpose(
	purpose uint32, prvkey *btcec.PrivateKey, pubkey *btcec.PublicKey,
) ([]byte, error) {
	switch purpose {
	case PurposeLegacy:
		return scriptutil.P2PKHScript(
			cryptoutil.Hash160(pubkey.SerializeCompressed()),
		)
	case PurposeNestedSegwit:
		redeemScript, err := scriptutil.P2WPKHScript(
			cryptoutil.Hash160(pubkey.SerializeCompressed()),
		)
		if err != nil {
			return nil, err
		}
		return scriptutil.P2SHScript(cryptoutil.Hash160(redeemScript))
	case PurposeNativeSegwit:
		return scriptutil.P2WPKHScript(
			cryptoutil.Hash160(pubkey.SerializeCompressed()),
		)
	case PurposeTaproot:
		tweaked, err := cryptoutil.TweakKeypairXOnly(
			prvkey.Serialize(), nil,
		)
		if err != nil {
			return nil, err
		}
		outputKey, err := cryptoutil.XOnlyPublicKey(tweaked)
		if err != nil {
			return nil, err
		}
		return scriptutil.P2TRScript(outputKey)
	default:
		return nil, ErrUnsupportedPurpose
	}
}
