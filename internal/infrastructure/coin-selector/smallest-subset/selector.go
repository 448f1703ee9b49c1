package smallestsubset_selector

import (
	"math"
	"sort"

	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

// maxCandidates bounds the combination search. Bigger pools fall back to
// the largest candidates first.
const maxCandidates = 16

type selector struct{}

func NewSmallestSubsetCoinSelector() ports.CoinSelector {
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

func (s *selector) SelectInputs(
	cs *domain.CoinSelection, available []*domain.Utxo, target uint64,
	asset *domain.Asset, limit int,
) []*domain.Utxo {
	current := cs.SelectedQuantity(asset)
	if current >= target {
		return available
	}

	candidates := cs.Candidates(available, asset)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].QuantityOf(asset) > candidates[j].QuantityOf(asset)
	})

	indexes := selectUtxos(target-current, candidates, asset, limit)

	selectedKeys := make([]domain.UtxoKey, 0, len(indexes))
	for _, i := range indexes {
		cs.SelectedUtxos = append(cs.SelectedUtxos, candidates[i])
		selectedKeys = append(selectedKeys, candidates[i].Key())
	}

	return domain.RemoveUtxos(available, selectedKeys)
}

// selectUtxos returns the index of the utxos that are going to be selected.
// The goal of this strategy is to select as less utxos as possible covering
// the target amount. If no subset covers it, the biggest utxos are returned
// so that the caller can tell how far it is from the target.
func selectUtxos(
	targetAmount uint64, utxos []*domain.Utxo, asset *domain.Asset, limit int,
) []int {
	maxSize := len(utxos)
	if limit > 0 && limit < maxSize {
		maxSize = limit
	}

	utxoValues := make([]uint64, 0, len(utxos))
	for _, u := range utxos {
		utxoValues = append(utxoValues, u.QuantityOf(asset))
	}

	if len(utxoValues) <= maxCandidates {
		if indexes := getBestCombination(utxoValues, targetAmount, maxSize); len(indexes) > 0 {
			return indexes
		}
	}

	indexes := make([]int, 0, maxSize)
	total := uint64(0)
	for i, v := range utxoValues {
		if total >= targetAmount || len(indexes) >= maxSize {
			break
		}
		indexes = append(indexes, i)
		total += v
	}
	return indexes
}

// getBestCombination attempts to select as less items as possible
// covering the given target amount, returning their indexes.
// The strategy here is to try finding exactly 1 item covering the given target
// amount or, otherwise, progressively increase the number of items until
// finding a combination that satisfies the criteria.
// If a combination exceeds the target amount, it is returned straightaway if
// its total amount is lower than 10 times the target one.
// Otherwise, if no combination satisfies this last criteria, the very first
// one found is returned.
func getBestCombination(items []uint64, target uint64, maxSize int) []int {
	combinations := [][]int{}
	for i := 1; i <= maxSize; i++ {
		sized := getCombination(len(items), i, 0, nil)
		for _, combo := range sized {
			total := sum(items, combo)
			if total < target {
				continue
			}
			if target > math.MaxUint64/10 || total <= target*10 {
				return combo
			}
		}
		combinations = append(combinations, sized...)
	}

	for _, combo := range combinations {
		if sum(items, combo) >= target {
			return combo
		}
	}

	return nil
}

// getCombination returns all combinations of size indexes in [offset, n).
func getCombination(n, size, offset int, prefix []int) [][]int {
	if size == 0 {
		combo := make([]int, len(prefix))
		copy(combo, prefix)
		return [][]int{combo}
	}
	result := [][]int{}
	for i := offset; i <= n-size; i++ {
		result = append(result, getCombination(n, size-1, i+1, append(prefix, i))...)
	}
	return result
}

func sum(items []uint64, indexes []int) uint64 {
	var total uint64
	for _, i := range indexes {
		total += items[i]
	}
	return total
}
