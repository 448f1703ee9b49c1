package application

import (
	"fmt"
	"strings"

	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
	basicchange_creator "github.com/vulpemventures/reef/internal/infrastructure/change-creator/basic-change"
	singletokenbundle_creator "github.com/vulpemventures/reef/internal/infrastructure/change-creator/single-token-bundle"
	lf_selector "github.com/vulpemventures/reef/internal/infrastructure/coin-selector/largest-first"
	ss_selector "github.com/vulpemventures/reef/internal/infrastructure/coin-selector/smallest-subset"
)

const (
	CoinSelectionStrategyLargestFirst = iota
	CoinSelectionStrategySmallestSubset
)

const (
	ChangeCreationStrategySingleTokenBundle = iota
	ChangeCreationStrategyBasicChange
)

// DefaultSelectionLimit is the max number of utxos added by a single
// selection round when the caller does not set any.
const DefaultSelectionLimit = 20

type CoinSelectorFactory func() ports.CoinSelector

type ChangeCreatorFactory func(params domain.ProtocolParams) ports.ChangeCreator

var (
	coinSelectorByType = map[int]CoinSelectorFactory{
		CoinSelectionStrategyLargestFirst:   lf_selector.NewLargestFirstCoinSelector,
		CoinSelectionStrategySmallestSubset: ss_selector.NewSmallestSubsetCoinSelector,
	}
	changeCreatorByType = map[int]ChangeCreatorFactory{
		ChangeCreationStrategySingleTokenBundle: singletokenbundle_creator.NewSingleTokenBundleChangeCreator,
		ChangeCreationStrategyBasicChange:       basicchange_creator.NewBasicChangeCreator,
	}
	coinSelectionStrategyNames = map[int]string{
		CoinSelectionStrategyLargestFirst:   "largest-first",
		CoinSelectionStrategySmallestSubset: "smallest-subset",
	}
	changeCreationStrategyNames = map[int]string{
		ChangeCreationStrategySingleTokenBundle: "single-token-bundle",
		ChangeCreationStrategyBasicChange:       "basic-change",
	}
)

// CoinSelectionStrategyFromString returns the strategy with the given name.
func CoinSelectionStrategyFromString(name string) (int, error) {
	for k, v := range coinSelectionStrategyNames {
		if v == name {
			return k, nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownCoinSelectionStrategy, name)
}

// ChangeCreationStrategyFromString returns the strategy with the given name.
func ChangeCreationStrategyFromString(name string) (int, error) {
	for k, v := range changeCreationStrategyNames {
		if v == name {
			return k, nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownChangeCreationStrategy, name)
}

type UtxoInfo struct {
	Spendable Utxos
	Locked    Utxos
}

type Utxos []*domain.Utxo

func (u Utxos) Keys() []domain.UtxoKey {
	keys := make([]domain.UtxoKey, 0, len(u))
	for _, utxo := range u {
		keys = append(keys, utxo.Key())
	}
	return keys
}

func (u Utxos) Info() []domain.UtxoInfo {
	info := make([]domain.UtxoInfo, 0, len(u))
	for _, utxo := range u {
		info = append(info, utxo.Info())
	}
	return info
}

type UtxosInfo []domain.UtxoInfo

func (u UtxosInfo) Keys() []domain.UtxoKey {
	keys := make([]domain.UtxoKey, 0, len(u))
	for _, utxo := range u {
		keys = append(keys, utxo.Key())
	}
	return keys
}

type UtxoKeys []domain.UtxoKey

func (u UtxoKeys) String() string {
	str := make([]string, 0, len(u))
	for _, key := range u {
		str = append(str, key.String())
	}
	return strings.Join(str, ", ")
}

// CoinSelectionRequest holds what the orchestrator needs to build a coin
// selection.
type CoinSelectionRequest struct {
	Outputs       []domain.TxOutput
	Utxos         []*domain.Utxo
	ChangeAddress string
	Mint          *domain.TokenBundle
	Certificates  []domain.Certificate
	RequiredUtxos []*domain.Utxo
	// Limit is the max number of utxos added by a single selection round.
	// 0 means DefaultSelectionLimit, a negative value means no limit.
	Limit     int
	FeeBuffer uint64
}

// SelectCoinsArgs are the args of a coin selection over the utxos of an
// account.
type SelectCoinsArgs struct {
	Account                string
	Outputs                []domain.TxOutput
	ChangeAddress          string
	Mint                   *domain.TokenBundle
	Certificates           []domain.Certificate
	RequiredUtxos          []domain.UtxoKey
	FeeBuffer              uint64
	Limit                  int
	CoinSelectionStrategy  int
	ChangeCreationStrategy int
}

func (a SelectCoinsArgs) validate() error {
	if a.Account == "" {
		return ErrMissingAccount
	}
	if a.ChangeAddress == "" {
		return ErrMissingChangeAddress
	}
	if _, ok := coinSelectorByType[a.CoinSelectionStrategy]; !ok {
		return fmt.Errorf("%w %d", ErrUnknownCoinSelectionStrategy, a.CoinSelectionStrategy)
	}
	if _, ok := changeCreatorByType[a.ChangeCreationStrategy]; !ok {
		return fmt.Errorf("%w %d", ErrUnknownChangeCreationStrategy, a.ChangeCreationStrategy)
	}
	for i, out := range a.Outputs {
		if out.Address == "" {
			return fmt.Errorf("%w: output %d", ErrMissingOutputAddress, i)
		}
	}
	return nil
}

// SelectionInfo is the result of a coin selection whose utxos have been
// locked until ExpirationDate.
type SelectionInfo struct {
	*domain.CoinSelection
	ExpirationDate int64
}

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}
