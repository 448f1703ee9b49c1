package application

import (
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

// CoinSelectionService builds coin selections with a given pair of coin
// selection and change creation strategies:
//   - The utxos to pin are added to the selection first.
//   - Every required native asset is then covered, in order, followed by the
//     required lovelace.
//   - The change outputs are built from the surplus and, until the change
//     lovelace covers the fee buffer plus the min lovelace of every change
//     output, more utxos are selected and the change is rebuilt.
//
// The service does not hold any state about requests, it can be shared by
// concurrent callers as long as they don't share the input slices.
type CoinSelectionService struct {
	coinSelector  ports.CoinSelector
	changeCreator ports.ChangeCreator
	params        domain.ProtocolParams

	log func(format string, a ...interface{})
}

func NewCoinSelectionService(
	coinSelector ports.CoinSelector, changeCreator ports.ChangeCreator,
	params domain.ProtocolParams,
) *CoinSelectionService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("coin selection: %s", format)
		log.Debugf(format, a...)
	}
	return &CoinSelectionService{coinSelector, changeCreator, params, logFn}
}

// GetCoinSelection returns the utxos covering the given request together
// with the change outputs and the inputs ready to be added to a transaction.
// domain.ErrInsufficientBalance is returned if the utxos can't cover it,
// ErrInvalidTxid if any of them isn't identified by a 32-byte hex txid.
func (s *CoinSelectionService) GetCoinSelection(
	req CoinSelectionRequest,
) (*domain.CoinSelection, error) {
	if err := validateUtxoTxids(req.Utxos, req.RequiredUtxos); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultSelectionLimit
	}

	cs := &domain.CoinSelection{}
	available := make([]*domain.Utxo, 0, len(req.Utxos))
	available = append(available, req.Utxos...)

	s.coinSelector.SelectRequiredInputs(cs, req.RequiredUtxos)
	available = domain.RemoveUtxos(available, cs.Keys())

	required := domain.AggregateBalance(
		req.Outputs, s.params, req.Mint, req.Certificates, req.FeeBuffer,
	)
	s.log(
		"required %d lovelace and %d asset(s), %d utxo(s) available",
		required.Lovelace, len(required.Assets), len(available),
	)

	for i := range required.Assets {
		asset := required.Assets[i]
		available = s.coinSelector.SelectInputs(
			cs, available, asset.Quantity, &asset, limit,
		)
		if selected := cs.SelectedQuantity(&asset); selected < asset.Quantity {
			return nil, fmt.Errorf(
				"%w: asset %s required %d, selected %d",
				domain.ErrInsufficientBalance, asset.Unit(), asset.Quantity, selected,
			)
		}
	}

	available = s.coinSelector.SelectInputs(
		cs, available, required.Lovelace, nil, limit,
	)
	if selected := cs.SelectedQuantity(nil); selected < required.Lovelace {
		return nil, fmt.Errorf(
			"%w: required %d lovelace, selected %d",
			domain.ErrInsufficientBalance, required.Lovelace, selected,
		)
	}

	// A refund can only be paid to the change of a tx with at least one input.
	if required.Refund > 0 && len(cs.SelectedUtxos) == 0 {
		s.log("refund of %d lovelace with no input, selecting one", required.Refund)
		available = s.coinSelector.SelectInputs(cs, available, 1, nil, limit)
		if len(cs.SelectedUtxos) == 0 {
			return nil, fmt.Errorf(
				"%w: no utxo to receive a refund of %d lovelace",
				domain.ErrInsufficientBalance, required.Refund,
			)
		}
	}

	if len(cs.SelectedUtxos) > 0 {
		s.changeCreator.CalculateChange(
			cs, required, req.ChangeAddress, req.FeeBuffer,
		)
	}

	change := changeLovelace(cs, required, req.FeeBuffer)
	minChange := s.minChangeLovelace(cs, req.FeeBuffer)

	for change < minChange && len(available) > 0 {
		target := minChange - change + cs.SelectedQuantity(nil)
		s.log(
			"change of %d lovelace below min of %d, selecting up to %d lovelace",
			change, minChange, target,
		)

		poolSize := len(available)
		available = s.coinSelector.SelectInputs(cs, available, target, nil, limit)
		if selected := cs.SelectedQuantity(nil); selected < target {
			return nil, fmt.Errorf(
				"%w: required %d lovelace to cover change, selected %d",
				domain.ErrInsufficientBalance, target, selected,
			)
		}

		s.changeCreator.CalculateChange(
			cs, required, req.ChangeAddress, req.FeeBuffer,
		)
		change = changeLovelace(cs, required, req.FeeBuffer)
		minChange = s.minChangeLovelace(cs, req.FeeBuffer)

		if len(available) == poolSize {
			break
		}
	}

	if change < minChange {
		return nil, fmt.Errorf(
			"%w: change of %d lovelace below min of %d",
			domain.ErrInsufficientBalance, change, minChange,
		)
	}

	cs.Inputs = makeInputs(cs.SelectedUtxos)

	s.log(
		"selected %d utxo(s) with %d change output(s)",
		len(cs.SelectedUtxos), len(cs.ChangeOutputs),
	)
	return cs, nil
}

// changeLovelace returns how much lovelace the selected utxos, plus any
// refund, hold in excess of the outputs, fee buffer excluded. It is 0 if the
// outputs aren't covered.
func changeLovelace(
	cs *domain.CoinSelection, required domain.Balance, feeBuffer uint64,
) uint64 {
	return domain.SurplusLovelace(cs.SelectedQuantity(nil), required, feeBuffer)
}

// minChangeLovelace returns the fee buffer plus the min lovelace of every
// change output.
func (s *CoinSelectionService) minChangeLovelace(
	cs *domain.CoinSelection, feeBuffer uint64,
) uint64 {
	total := feeBuffer
	for _, out := range cs.ChangeOutputs {
		total += s.params.MinLovelace(out)
	}
	return total
}

func validateUtxoTxids(lists ...[]*domain.Utxo) error {
	for _, utxos := range lists {
		for _, u := range utxos {
			if err := validateTxid(u.TxID); err != nil {
				return err
			}
		}
	}
	return nil
}

func makeInputs(utxos []*domain.Utxo) []domain.TxInput {
	inputs := make([]domain.TxInput, 0, len(utxos))
	for _, u := range utxos {
		// Txids are validated before selecting.
		txid, _ := hex.DecodeString(u.TxID)
		out, _ := u.Output()
		inputs = append(inputs, domain.TxInput{
			TransactionID:    txid,
			TransactionIndex: u.VOut,
			Output:           out,
		})
	}
	return inputs
}
