package application

import "fmt"

var (
	ErrMissingAccount                = fmt.Errorf("missing account")
	ErrMissingChangeAddress          = fmt.Errorf("missing change address")
	ErrMissingOutputAddress          = fmt.Errorf("missing output address")
	ErrMissingUtxos                  = fmt.Errorf("missing utxos")
	ErrInvalidTxid                   = fmt.Errorf("invalid txid, must be a 32-byte hex string")
	ErrUnknownCoinSelectionStrategy  = fmt.Errorf("unknown coin selection strategy")
	ErrUnknownChangeCreationStrategy = fmt.Errorf("unknown change creation strategy")
	ErrRequiredUtxoNotFound          = fmt.Errorf("required utxo not found")
	ErrRequiredUtxoNotSpendable      = fmt.Errorf("required utxo is either locked or spent")
)
