package scriptutil

import (
	"errors"

	"github.com/btcsuite/btcd/txscript"
)

// ScriptType enumerates the output script templates the wallet is able to
// recognize, pay to and spend from.
type ScriptType int

const (
	Unknown ScriptType = iota
	P2PKH
	P2SH
	P2WPKH
	P2WSH
	P2TR
)

func (t ScriptType) String() string {
	switch t {
	case P2PKH:
		return "p2pkh"
	case P2SH:
		return "p2sh"
	case P2WPKH:
		return "p2wpkh"
	case P2WSH:
		return "p2wsh"
	case P2TR:
		return "p2tr"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidHashLength ...
	ErrInvalidHashLength = errors.New("hash must be 20 bytes")
	// ErrInvalidWitnessProgramLength ...
	ErrInvalidWitnessProgramLength = errors.New(
		"witness program must be 20 or 32 bytes for v0, 32 bytes for v1",
	)
	// ErrInvalidXOnlyKeyLength ...
	ErrInvalidXOnlyKeyLength = errors.New("x-only public key must be 32 bytes")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not a valid bitcoin address")
)

// P2PKHScript returns the pay-to-pubkey-hash script for the given 20 byte
// pubkey hash: OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG.
func P2PKHScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != 20 {
		return nil, ErrInvalidHashLength
	}
	script := make([]byte, 0, 25)
	script = append(script, txscript.OP_DUP, txscript.OP_HASH160, txscript.OP_DATA_20)
	script = append(script, pubKeyHash...)
	script = append(script, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG)
	return script, nil
}

// P2SHScript returns the pay-to-script-hash script for the given 20 byte
// script hash: OP_HASH160 <hash> OP_EQUAL.
func P2SHScript(scriptHash []byte) ([]byte, error) {
	if len(scriptHash) != 20 {
		return nil, ErrInvalidHashLength
	}
	script := make([]byte, 0, 23)
	script = append(script, txscript.OP_HASH160, txscript.OP_DATA_20)
	script = append(script, scriptHash...)
	script = append(script, txscript.OP_EQUAL)
	return script, nil
}

// P2WPKHScript returns the segwit v0 keyhash script OP_0 <20-byte hash>.
func P2WPKHScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != 20 {
		return nil, ErrInvalidHashLength
	}
	script := make([]byte, 0, 22)
	script = append(script, txscript.OP_0, txscript.OP_DATA_20)
	script = append(script, pubKeyHash...)
	return script, nil
}

// P2WSHScript returns the segwit v0 scripthash script OP_0 <32-byte hash>.
func P2WSHScript(scriptHash []byte) ([]byte, error) {
	if len(scriptHash) != 32 {
		return nil, errors.New("witness script hash must be 32 bytes")
	}
	script := make([]byte, 0, 34)
	script = append(script, txscript.OP_0, txscript.OP_DATA_32)
	script = append(script, scriptHash...)
	return script, nil
}

// P2TRScript returns the taproot script OP_1 <32-byte x-only pubkey>.
func P2TRScript(taprootKey []byte) ([]byte, error) {
	if len(taprootKey) != 32 {
		return nil, ErrInvalidXOnlyKeyLength
	}
	script := make([]byte, 0, 34)
	script = append(script, txscript.OP_1, txscript.OP_DATA_32)
	script = append(script, taprootKey...)
	return script, nil
}

// DetectScriptType structurally matches the given output script against
// the known templates.
func DetectScriptType(script []byte) ScriptType {
	switch {
	case len(script) == 25 &&
		script[0] == txscript.OP_DUP &&
		script[1] == txscript.OP_HASH160 &&
		script[2] == txscript.OP_DATA_20 &&
		script[23] == txscript.OP_EQUALVERIFY &&
		script[24] == txscript.OP_CHECKSIG:
		return P2PKH
	case len(script) == 23 &&
		script[0] == txscript.OP_HASH160 &&
		script[1] == txscript.OP_DATA_20 &&
		script[22] == txscript.OP_EQUAL:
		return P2SH
	case len(script) == 22 &&
		script[0] == txscript.OP_0 &&
		script[1] == txscript.OP_DATA_20:
		return P2WPKH
	case len(script) == 34 &&
		script[0] == txscript.OP_0 &&
		script[1] == txscript.OP_DATA_32:
		return P2WSH
	case len(script) == 34 &&
		script[0] == txscript.OP_1 &&
		script[1] == txscript.OP_DATA_32:
		return P2TR
	default:
		return Unknown
	}
}
