package application_test

import (
	"fmt"

	"github.com/stretchr/testify/mock"
	"github.com/vulpemventures/reef/internal/core/domain"
)

// domain.ProtocolParams
type mockProtocolParams struct {
	mock.Mock
}

func newMockedProtocolParams(minLovelace, keyDeposit uint64) *mockProtocolParams {
	m := &mockProtocolParams{}
	m.On("MinLovelace", mock.Anything).Return(minLovelace)
	m.On("KeyDeposit").Return(keyDeposit)
	return m
}

func (m *mockProtocolParams) KeyDeposit() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

func (m *mockProtocolParams) MinLovelace(output domain.TxOutput) uint64 {
	args := m.Called(output)
	return args.Get(0).(uint64)
}

func newUtxo(account string, vout uint32, lovelace uint64, assets ...domain.Asset) *domain.Utxo {
	if assets == nil {
		assets = domain.Assets{}
	}
	return &domain.Utxo{
		UtxoKey:       domain.UtxoKey{TxID: fmt.Sprintf("%064x", vout+1), VOut: vout},
		Account:       account,
		Balance:       domain.Balance{Lovelace: lovelace, Assets: assets},
		OutputAddress: changeAddress,
	}
}

func newOutput(lovelace uint64, assets ...domain.Asset) domain.TxOutput {
	if assets == nil {
		assets = domain.Assets{}
	}
	return domain.TxOutput{
		Address: receiverAddress,
		Value:   domain.Balance{Lovelace: lovelace, Assets: assets},
	}
}

func vouts(utxos []*domain.Utxo) []uint32 {
	list := make([]uint32, 0, len(utxos))
	for _, u := range utxos {
		list = append(list, u.VOut)
	}
	return list
}
