package ports

import "github.com/vulpemventures/reef/internal/core/domain"

// ChangeCreator is the abstraction for any kind of service intended to
// build the change outputs of a coin selection.
type ChangeCreator interface {
	// CalculateChange replaces the change outputs of the selection with new
	// ones returning what the selected utxos hold in excess of required,
	// fee buffer included, to changeAddress.
	CalculateChange(
		cs *domain.CoinSelection, required domain.Balance,
		changeAddress string, feeBuffer uint64,
	)
}
