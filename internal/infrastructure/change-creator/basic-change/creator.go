package basicchange_creator

import (
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

type creator struct{}

// NewBasicChangeCreator returns a change creator that pays the whole
// surplus to a single output. The output does not depend on protocol
// params, the argument only matches the signature of the other creators.
func NewBasicChangeCreator(_ domain.ProtocolParams) ports.ChangeCreator {
	return &creator{}
}

func (c *creator) CalculateChange(
	cs *domain.CoinSelection, required domain.Balance,
	changeAddress string, feeBuffer uint64,
) {
	surplus := domain.Surplus(cs.SelectedUtxos, required, feeBuffer)
	if surplus.IsZero() {
		cs.ChangeOutputs = nil
		return
	}

	out := domain.TxOutput{
		Address: changeAddress,
		Value:   domain.Balance{Lovelace: surplus.Lovelace, Assets: domain.Assets{}},
	}
	out.Value.Assets = append(out.Value.Assets, surplus.Assets...)

	cs.ChangeOutputs = []domain.TxOutput{out}
}
