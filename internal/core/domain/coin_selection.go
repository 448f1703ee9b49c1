package domain

import "fmt"

var (
	ErrInsufficientBalance = fmt.Errorf("utxos have insufficient balance")
)

// TxOutput is an output of a transaction.
type TxOutput struct {
	Address         string
	Value           Balance
	DatumOption     []byte
	ScriptReference []byte
}

// TxInput is a transaction input, optionally carrying the output it spends.
type TxInput struct {
	TransactionID    []byte
	TransactionIndex uint32
	Output           *TxOutput
}

// CoinSelection is the result of a coin selection: the utxos to spend, the
// change outputs returning the surplus and the inputs ready to be added to a
// transaction.
type CoinSelection struct {
	SelectedUtxos []*Utxo
	ChangeOutputs []TxOutput
	Inputs        []TxInput
}

// IsSelected returns whether the utxo with the given key is already part of
// the selection.
func (cs *CoinSelection) IsSelected(key UtxoKey) bool {
	for _, u := range cs.SelectedUtxos {
		if u.Key() == key {
			return true
		}
	}
	return false
}

// SelectedBalance returns the total balance of the selected utxos.
func (cs *CoinSelection) SelectedBalance() Balance {
	return BalanceOf(cs.SelectedUtxos)
}

// ChangeBalance returns the total balance of the change outputs.
func (cs *CoinSelection) ChangeBalance() Balance {
	total := Balance{Assets: Assets{}}
	for _, out := range cs.ChangeOutputs {
		total = total.Add(out.Value)
	}
	return total
}

// Keys returns the keys of the selected utxos.
func (cs *CoinSelection) Keys() []UtxoKey {
	keys := make([]UtxoKey, 0, len(cs.SelectedUtxos))
	for _, u := range cs.SelectedUtxos {
		keys = append(keys, u.Key())
	}
	return keys
}

// SelectedQuantity returns the total quantity of the given asset, or of
// lovelace if nil, held by the selected utxos.
func (cs *CoinSelection) SelectedQuantity(asset *Asset) uint64 {
	total := uint64(0)
	for _, u := range cs.SelectedUtxos {
		total += u.QuantityOf(asset)
	}
	return total
}

// Candidates returns the utxos of the pool that are not selected yet and
// hold the given asset. With a nil asset every unselected utxo is returned.
func (cs *CoinSelection) Candidates(pool []*Utxo, asset *Asset) []*Utxo {
	candidates := make([]*Utxo, 0, len(pool))
	for _, u := range pool {
		if cs.IsSelected(u.Key()) {
			continue
		}
		if asset != nil && !u.Balance.HasAsset(asset.PolicyID, asset.Name) {
			continue
		}
		candidates = append(candidates, u)
	}
	return candidates
}

// RemoveUtxos returns a new pool without the utxos with the given keys.
// The order of the remaining ones is preserved.
func RemoveUtxos(pool []*Utxo, keys []UtxoKey) []*Utxo {
	if len(keys) <= 0 {
		return pool
	}
	toRemove := make(map[UtxoKey]struct{}, len(keys))
	for _, k := range keys {
		toRemove[k] = struct{}{}
	}
	remaining := make([]*Utxo, 0, len(pool))
	for _, u := range pool {
		if _, ok := toRemove[u.Key()]; ok {
			continue
		}
		remaining = append(remaining, u)
	}
	return remaining
}
