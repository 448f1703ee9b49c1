package singletokenbundle_creator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/reef/internal/core/domain"
	singletokenbundle_creator "github.com/vulpemventures/reef/internal/infrastructure/change-creator/single-token-bundle"
)

const (
	changeAddress = "addr_test1change"
	policyID      = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	ada           = uint64(1_000_000)
)

// fixedParams requires 1 ada per output.
type fixedParams struct{}

func (fixedParams) KeyDeposit() uint64                 { return 2 * ada }
func (fixedParams) MinLovelace(domain.TxOutput) uint64 { return ada }

func TestCalculateChange(t *testing.T) {
	tests := []struct {
		name      string
		selected  []*domain.Utxo
		required  domain.Balance
		feeBuffer uint64
		expected  []domain.TxOutput
	}{
		{
			name:      "lovelace only",
			selected:  []*domain.Utxo{newUtxo(0, 10*ada)},
			required:  domain.Balance{Lovelace: 7 * ada},
			feeBuffer: 1 * ada,
			expected: []domain.TxOutput{
				changeOutput(4*ada),
			},
		},
		{
			name:     "nothing left",
			selected: []*domain.Utxo{newUtxo(0, 10*ada)},
			required: domain.Balance{Lovelace: 10 * ada},
			expected: []domain.TxOutput{},
		},
		{
			name: "one output per asset",
			selected: []*domain.Utxo{
				newUtxo(0, 10*ada, 5, 3),
				newUtxo(1, 5*ada, 2),
			},
			required: domain.Balance{
				Lovelace: 8 * ada,
				Assets:   domain.Assets{asset(0, 5)},
			},
			feeBuffer: 2 * ada,
			expected: []domain.TxOutput{
				changeOutput(ada, asset(0, 2)),
				changeOutput(8*ada, asset(1, 3)),
			},
		},
		{
			name: "not enough lovelace for every asset",
			selected: []*domain.Utxo{
				newUtxo(0, 3*ada/2, 5, 3),
			},
			required: domain.Balance{Lovelace: 0},
			expected: []domain.TxOutput{
				changeOutput(ada, asset(0, 5)),
				changeOutput(ada/2, asset(1, 3)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := singletokenbundle_creator.NewSingleTokenBundleChangeCreator(
				fixedParams{},
			)
			cs := &domain.CoinSelection{
				SelectedUtxos: tt.selected,
				ChangeOutputs: []domain.TxOutput{changeOutput(ada)},
			}
			creator.CalculateChange(cs, tt.required, changeAddress, tt.feeBuffer)
			require.Equal(t, tt.expected, cs.ChangeOutputs)
		})
	}
}

func asset(i int, qty uint64) domain.Asset {
	return domain.Asset{
		PolicyID: policyID,
		Name:     fmt.Sprintf("746f6b656e%02x", i),
		Quantity: qty,
	}
}

func newUtxo(vout uint32, lovelace uint64, quantities ...uint64) *domain.Utxo {
	assets := domain.Assets{}
	for i, q := range quantities {
		assets = append(assets, asset(i, q))
	}
	return &domain.Utxo{
		UtxoKey: domain.UtxoKey{TxID: fmt.Sprintf("%064x", vout+1), VOut: vout},
		Balance: domain.Balance{Lovelace: lovelace, Assets: assets},
	}
}

func changeOutput(lovelace uint64, assets ...domain.Asset) domain.TxOutput {
	if assets == nil {
		assets = domain.Assets{}
	}
	return domain.TxOutput{
		Address: changeAddress,
		Value:   domain.Balance{Lovelace: lovelace, Assets: assets},
	}
}
