package scriptutil

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
)

// AddressFromScript encodes the given output script to its address
// representation on the given network. Base58Check is used for the legacy
// templates, bech32 for segwit v0 and bech32m for taproot.
func AddressFromScript(script []byte, net *chaincfg.Params) (string, error) {
	switch DetectScriptType(script) {
	case P2PKH:
		return base58.CheckEncode(script[3:23], net.PubKeyHashAddrID), nil
	case P2SH:
		return base58.CheckEncode(script[2:22], net.ScriptHashAddrID), nil
	case P2WPKH:
		return encodeSegwitAddress(net.Bech32HRPSegwit, 0, script[2:])
	case P2WSH:
		return encodeSegwitAddress(net.Bech32HRPSegwit, 0, script[2:])
	case P2TR:
		return encodeSegwitAddress(net.Bech32HRPSegwit, 1, script[2:])
	default:
		return "", ErrInvalidAddress
	}
}

// ScriptFromAddress decodes an address on the given network and returns
// the output script it pays to. It fails with ErrInvalidAddress when
// neither the Base58Check nor the bech32 parse succeeds, or when the
// decoded version/program pair is not one of the recognized combinations.
func ScriptFromAddress(addr string, net *chaincfg.Params) ([]byte, error) {
	if payload, version, err := base58.CheckDecode(addr); err == nil {
		if len(payload) != 20 {
			return nil, ErrInvalidAddress
		}
		switch version {
		case net.PubKeyHashAddrID:
			return P2PKHScript(payload)
		case net.ScriptHashAddrID:
			return P2SHScript(payload)
		default:
			return nil, ErrInvalidAddress
		}
	}

	hrp, data, bech32Version, err := bech32.DecodeGeneric(addr)
	if err != nil || hrp != net.Bech32HRPSegwit || len(data) < 1 {
		return nil, ErrInvalidAddress
	}
	witnessVersion := data[0]
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, ErrInvalidAddress
	}

	switch {
	case witnessVersion == 0 && bech32Version == bech32.Version0 &&
		len(program) == 20:
		return P2WPKHScript(program)
	case witnessVersion == 0 && bech32Version == bech32.Version0 &&
		len(program) == 32:
		return P2WSHScript(program)
	case witnessVersion == 1 && bech32Version == bech32.VersionM &&
		len(program) == 32:
		return P2TRScript(program)
	default:
		return nil, ErrInvalidAddress
	}
}

func encodeSegwitAddress(
	hrp string, witnessVersion byte, program []byte,
) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := append([]byte{witnessVersion}, converted...)
	if witnessVersion == 0 {
		return bech32.Encode(hrp, data)
	}
	return bech32.EncodeM(hrp, data)
}
