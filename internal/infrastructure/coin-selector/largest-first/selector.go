package largestfirst_selector

import (
	"sort"

	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

type selector struct{}

func NewLargestFirstCoinSelector() ports.CoinSelector {
	return &selector{}
}

func (s *selector) SelectRequiredInputs(
	cs *domain.CoinSelection, required []*domain.Utxo,
) {
	for _, u := range required {
		if u == nil || cs.IsSelected(u.Key()) {
			continue
		}
		cs.SelectedUtxos = append(cs.SelectedUtxos, u)
	}
}

// SelectInputs picks the candidates holding the biggest quantity of the
// target asset first. Ties keep the order of the pool.
func (s *selector) SelectInputs(
	cs *domain.CoinSelection, available []*domain.Utxo, target uint64,
	asset *domain.Asset, limit int,
) []*domain.Utxo {
	candidates := cs.Candidates(available, asset)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].QuantityOf(asset) > candidates[j].QuantityOf(asset)
	})

	total := cs.SelectedQuantity(asset)
	selectedKeys := make([]domain.UtxoKey, 0)
	for _, u := range candidates {
		if total >= target {
			break
		}
		if limit > 0 && len(selectedKeys) >= limit {
			break
		}
		cs.SelectedUtxos = append(cs.SelectedUtxos, u)
		selectedKeys = append(selectedKeys, u.Key())
		total += u.QuantityOf(asset)
	}

	return domain.RemoveUtxos(available, selectedKeys)
}
