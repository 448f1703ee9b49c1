package ports

import "github.com/vulpemventures/reef/internal/core/domain"

// CoinSelector is the abstraction for any kind of service intended to move
// utxos from an available pool into a coin selection, based on a specific
// strategy.
type CoinSelector interface {
	// SelectRequiredInputs adds the given utxos to the selection, in order.
	SelectRequiredInputs(cs *domain.CoinSelection, required []*domain.Utxo)
	// SelectInputs moves utxos from available to the selection until the
	// selected quantity of asset (lovelace if nil) reaches target, the
	// candidates run out or limit utxos have been taken by this call.
	// The updated pool is returned. Not reaching target is not an error,
	// sufficiency is checked by the caller.
	SelectInputs(
		cs *domain.CoinSelection, available []*domain.Utxo, target uint64,
		asset *domain.Asset, limit int,
	) []*domain.Utxo
}
