package protocolparams_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/reef/internal/core/domain"
	protocolparams "github.com/vulpemventures/reef/internal/infrastructure/protocol-params"
)

var (
	// 57 bytes, the size of a base address.
	baseAddress = "01" + strings.Repeat("ab", 56)
	policyID    = strings.Repeat("cd", 28)
)

func TestNewProtocolParams(t *testing.T) {
	_, err := protocolparams.NewProtocolParams(0, 2_000_000)
	require.ErrorIs(t, err, protocolparams.ErrInvalidCoinsPerUTxOByte)

	params, err := protocolparams.NewProtocolParams(4310, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), params.KeyDeposit())
}

func TestMinLovelace(t *testing.T) {
	params := protocolparams.NewDefaultProtocolParams()

	plain := domain.TxOutput{
		Address: baseAddress,
		Value:   domain.Balance{Lovelace: 10_000_000},
	}
	// array(1) + bytes(2+57) + uint32(5) = 65 bytes.
	require.Equal(t, uint64((160+65)*4310), params.MinLovelace(plain))

	withAsset := plain
	withAsset.Value = domain.Balance{
		Lovelace: 10_000_000,
		Assets: domain.Assets{
			{PolicyID: policyID, Name: "746f6b656e", Quantity: 1},
		},
	}
	require.Greater(t, params.MinLovelace(withAsset), params.MinLovelace(plain))

	withTwoAssets := withAsset
	withTwoAssets.Value = domain.Balance{
		Lovelace: 10_000_000,
		Assets: domain.Assets{
			{PolicyID: policyID, Name: "746f6b656e", Quantity: 1},
			{PolicyID: policyID, Name: "746f6b656f", Quantity: 1},
		},
	}
	require.Greater(t, params.MinLovelace(withTwoAssets), params.MinLovelace(withAsset))

	withDatum := plain
	withDatum.DatumOption = []byte{0x82, 0x00, 0x58, 0x20}
	require.Greater(t, params.MinLovelace(withDatum), params.MinLovelace(plain))
}

func TestMinLovelaceBech32Address(t *testing.T) {
	params := protocolparams.NewDefaultProtocolParams()

	bech32Out := domain.TxOutput{
		Address: "addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgse35a3x",
		Value:   domain.Balance{Lovelace: 1_000_000},
	}
	// The address decodes to 57 bytes, same as the hex one.
	hexOut := domain.TxOutput{
		Address: baseAddress,
		Value:   domain.Balance{Lovelace: 1_000_000},
	}
	require.Equal(t, params.MinLovelace(hexOut), params.MinLovelace(bech32Out))
}
