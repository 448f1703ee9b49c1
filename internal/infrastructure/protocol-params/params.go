package protocolparams

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/fxamacker/cbor/v2"
	"github.com/vulpemventures/reef/internal/core/domain"
)

const (
	DefaultCoinsPerUTxOByte = uint64(4310)
	DefaultKeyDeposit       = uint64(2_000_000)

	// utxoEntryOverhead is the size in bytes accounted for the ledger entry
	// of an output on top of its serialization.
	utxoEntryOverhead = 160
)

var (
	ErrInvalidCoinsPerUTxOByte = fmt.Errorf("coins per utxo byte must be positive")

	encMode, _ = cbor.CoreDetEncOptions().EncMode()
)

type params struct {
	coinsPerUTxOByte uint64
	keyDeposit       uint64
}

// NewProtocolParams returns the ledger parameters with the given cost per
// utxo byte and stake key deposit.
func NewProtocolParams(
	coinsPerUTxOByte, keyDeposit uint64,
) (domain.ProtocolParams, error) {
	if coinsPerUTxOByte == 0 {
		return nil, ErrInvalidCoinsPerUTxOByte
	}
	return &params{coinsPerUTxOByte, keyDeposit}, nil
}

// NewDefaultProtocolParams returns the mainnet parameters.
func NewDefaultProtocolParams() domain.ProtocolParams {
	return &params{DefaultCoinsPerUTxOByte, DefaultKeyDeposit}
}

func (p *params) KeyDeposit() uint64 {
	return p.keyDeposit
}

// MinLovelace returns (160 + serialized size) * coins per utxo byte.
func (p *params) MinLovelace(output domain.TxOutput) uint64 {
	size := uint64(len(serializeOutput(output)))
	return (utxoEntryOverhead + size) * p.coinsPerUTxOByte
}

// serializeOutput returns the CBOR encoding of the output: the legacy array
// format unless a datum or a script reference forces the map one.
func serializeOutput(output domain.TxOutput) []byte {
	address := addressBytes(output.Address)
	value := serializeValue(output.Value)

	var out interface{} = []interface{}{address, value}
	if len(output.DatumOption) > 0 || len(output.ScriptReference) > 0 {
		m := map[int]interface{}{0: address, 1: value}
		if len(output.DatumOption) > 0 {
			m[2] = rawOrBytes(output.DatumOption)
		}
		if len(output.ScriptReference) > 0 {
			m[3] = cbor.Tag{Number: 24, Content: output.ScriptReference}
		}
		out = m
	}

	buf, err := encMode.Marshal(out)
	if err != nil {
		return nil
	}
	return buf
}

func serializeValue(value domain.Balance) interface{} {
	if len(value.Assets) <= 0 {
		return value.Lovelace
	}

	multiAsset := make(map[cbor.ByteString]map[cbor.ByteString]uint64)
	for _, a := range value.Assets {
		policy := cbor.ByteString(hexOrRaw(a.PolicyID))
		if _, ok := multiAsset[policy]; !ok {
			multiAsset[policy] = make(map[cbor.ByteString]uint64)
		}
		multiAsset[policy][cbor.ByteString(hexOrRaw(a.Name))] += a.Quantity
	}
	return []interface{}{value.Lovelace, multiAsset}
}

// addressBytes returns the raw bytes of a bech32 or hex encoded address.
func addressBytes(address string) []byte {
	if _, data, err := bech32.DecodeNoLimit(address); err == nil {
		if buf, err := bech32.ConvertBits(data, 5, 8, false); err == nil {
			return buf
		}
	}
	return hexOrRaw(address)
}

func hexOrRaw(str string) []byte {
	if buf, err := hex.DecodeString(str); err == nil {
		return buf
	}
	return []byte(str)
}

func rawOrBytes(buf []byte) interface{} {
	if err := cbor.Wellformed(buf); err == nil {
		return cbor.RawMessage(buf)
	}
	return buf
}
