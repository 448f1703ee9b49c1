package singletokenbundle_creator

import (
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

type creator struct {
	params domain.ProtocolParams
}

// NewSingleTokenBundleChangeCreator returns a change creator that pays
// every surplus native asset to its own output.
func NewSingleTokenBundleChangeCreator(
	params domain.ProtocolParams,
) ports.ChangeCreator {
	return &creator{params}
}

// CalculateChange gives each asset output its own minimum lovelace, as far
// as the surplus allows. The lovelace left is added to the last asset
// output, or paid to a dedicated output if no asset is left over.
func (c *creator) CalculateChange(
	cs *domain.CoinSelection, required domain.Balance,
	changeAddress string, feeBuffer uint64,
) {
	surplus := domain.Surplus(cs.SelectedUtxos, required, feeBuffer)
	remaining := surplus.Lovelace

	outputs := make([]domain.TxOutput, 0, len(surplus.Assets)+1)
	for _, asset := range surplus.Assets {
		out := domain.TxOutput{
			Address: changeAddress,
			Value: domain.Balance{
				Lovelace: remaining,
				Assets:   domain.Assets{asset},
			},
		}
		amount := c.params.MinLovelace(out)
		if amount > remaining {
			amount = remaining
		}
		out.Value.Lovelace = amount
		remaining -= amount
		outputs = append(outputs, out)
	}

	if remaining > 0 {
		if len(outputs) > 0 {
			outputs[len(outputs)-1].Value.Lovelace += remaining
		} else {
			outputs = append(outputs, domain.TxOutput{
				Address: changeAddress,
				Value:   domain.Balance{Lovelace: remaining, Assets: domain.Assets{}},
			})
		}
	}

	cs.ChangeOutputs = outputs
}
