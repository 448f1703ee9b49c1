package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/reef/internal/core/application"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
	basicchange_creator "github.com/vulpemventures/reef/internal/infrastructure/change-creator/basic-change"
	singletokenbundle_creator "github.com/vulpemventures/reef/internal/infrastructure/change-creator/single-token-bundle"
	lf_selector "github.com/vulpemventures/reef/internal/infrastructure/coin-selector/largest-first"
	protocolparams "github.com/vulpemventures/reef/internal/infrastructure/protocol-params"
)

const (
	ada             = uint64(1_000_000)
	accountName     = "test"
	changeAddress   = "addr_test1qpchangechangechangechangechangechangechangechange"
	receiverAddress = "addr_test1qpreceiverreceiverreceiverreceiverreceiverrecv"
	policyID        = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	mintPolicyID    = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func token(name string, quantity uint64) domain.Asset {
	return domain.Asset{PolicyID: policyID, Name: name, Quantity: quantity}
}

func TestGetCoinSelection(t *testing.T) {
	params := protocolparams.NewDefaultProtocolParams()
	basicChange := basicchange_creator.NewBasicChangeCreator(params)
	singleTokenBundle := singletokenbundle_creator.NewSingleTokenBundleChangeCreator(params)
	mintedAsset := domain.Asset{PolicyID: mintPolicyID, Name: "6d696e74", Quantity: 1}

	tests := []struct {
		name                  string
		changeCreator         ports.ChangeCreator
		req                   application.CoinSelectionRequest
		expectedSelection     []uint32
		expectedChangeOutputs int
	}{
		{
			name:          "fee buffer with basic change",
			changeCreator: basicChange,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(100 * ada)},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 50*ada),
					newUtxo(accountName, 1, 50*ada),
					newUtxo(accountName, 2, 10*ada),
					newUtxo(accountName, 3, 20*ada),
				},
				FeeBuffer: 21 * ada,
			},
			expectedSelection:     []uint32{0, 1, 3, 2},
			expectedChangeOutputs: 1,
		},
		{
			name:          "fee buffer with single token bundle",
			changeCreator: singleTokenBundle,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(100 * ada)},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 50*ada),
					newUtxo(accountName, 1, 50*ada),
					newUtxo(accountName, 2, 10*ada),
					newUtxo(accountName, 3, 20*ada),
				},
				FeeBuffer: 21 * ada,
			},
			expectedSelection:     []uint32{0, 1, 3, 2},
			expectedChangeOutputs: 1,
		},
		{
			name:          "mint with single utxo",
			changeCreator: singleTokenBundle,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(10*ada, mintedAsset)},
				Utxos:   []*domain.Utxo{newUtxo(accountName, 0, 40*ada)},
				Mint: domain.NewTokenBundle().AddToken(
					mintedAsset.PolicyID, mintedAsset.Name, 1,
				),
			},
			expectedSelection:     []uint32{0},
			expectedChangeOutputs: 1,
		},
		{
			name:          "mint with multiple utxos",
			changeCreator: singleTokenBundle,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{
					newOutput(100 * ada), newOutput(10*ada, mintedAsset),
				},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 40*ada),
					newUtxo(accountName, 1, 10*ada),
					newUtxo(accountName, 2, 50*ada),
					newUtxo(accountName, 3, 20*ada),
					newUtxo(accountName, 4, 30*ada),
				},
				Mint: domain.NewTokenBundle().AddToken(
					mintedAsset.PolicyID, mintedAsset.Name, 1,
				),
			},
			expectedSelection:     []uint32{2, 0, 4},
			expectedChangeOutputs: 1,
		},
		{
			name:          "burn selects the asset holder first",
			changeCreator: basicChange,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(10 * ada)},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 100*ada),
					newUtxo(accountName, 1, 2*ada, token("6275726e", 1)),
				},
				Mint: domain.NewTokenBundle().AddToken(policyID, "6275726e", -1),
			},
			expectedSelection:     []uint32{1, 0},
			expectedChangeOutputs: 1,
		},
		{
			name:          "assets change with basic change",
			changeCreator: basicChange,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{
					newOutput(10 * ada), newOutput(10 * ada), newOutput(10 * ada),
				},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 10*ada, token("01", 10)),
					newUtxo(accountName, 1, 10*ada, token("02", 1)),
					newUtxo(accountName, 2, 10*ada, token("03", 1)),
					newUtxo(accountName, 3, 10*ada, token("04", 100)),
				},
				FeeBuffer: 3 * ada,
			},
			expectedSelection:     []uint32{0, 1, 2, 3},
			expectedChangeOutputs: 1,
		},
		{
			name:          "assets change with single token bundle",
			changeCreator: singleTokenBundle,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{
					newOutput(10 * ada), newOutput(10 * ada), newOutput(10 * ada),
				},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 10*ada, token("01", 10)),
					newUtxo(accountName, 1, 10*ada, token("02", 1)),
					newUtxo(accountName, 2, 10*ada, token("03", 1)),
					newUtxo(accountName, 3, 10*ada, token("04", 100)),
				},
				FeeBuffer: 3 * ada,
			},
			expectedSelection:     []uint32{0, 1, 2, 3},
			expectedChangeOutputs: 4,
		},
		{
			name:          "asset payment",
			changeCreator: singleTokenBundle,
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(2*ada, token("01", 40))},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 50*ada),
					newUtxo(accountName, 1, 5*ada, token("01", 30)),
					newUtxo(accountName, 2, 3*ada, token("01", 50)),
				},
				FeeBuffer: ada,
			},
			expectedSelection:     []uint32{2, 0},
			expectedChangeOutputs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := application.NewCoinSelectionService(
				lf_selector.NewLargestFirstCoinSelector(), tt.changeCreator, params,
			)
			poolSize := len(tt.req.Utxos)

			cs, err := svc.GetCoinSelection(tt.req)
			require.NoError(t, err)
			require.NotNil(t, cs)
			require.Equal(t, tt.expectedSelection, vouts(cs.SelectedUtxos))
			require.Len(t, cs.ChangeOutputs, tt.expectedChangeOutputs)
			require.Len(t, tt.req.Utxos, poolSize)
			requireBalanced(t, params, tt.req, cs)
		})
	}
}

func TestGetCoinSelectionFailure(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)

	tests := []struct {
		name string
		req  application.CoinSelectionRequest
	}{
		{
			name: "lovelace not covered",
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(100 * ada)},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 50*ada),
					newUtxo(accountName, 1, 50*ada),
					newUtxo(accountName, 2, 10*ada),
				},
				FeeBuffer: 11 * ada,
			},
		},
		{
			name: "asset not covered",
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(2*ada, token("01", 5))},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 50*ada, token("01", 3)),
				},
			},
		},
		{
			name: "burn not covered",
			req: application.CoinSelectionRequest{
				Utxos: []*domain.Utxo{newUtxo(accountName, 0, 50*ada)},
				Mint:  domain.NewTokenBundle().AddToken(policyID, "01", -1),
			},
		},
		{
			name: "change not covered",
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(9*ada + ada/2)},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 10*ada),
					newUtxo(accountName, 1, ada/5),
				},
			},
		},
		{
			name: "change not covered with empty pool",
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(9*ada + ada/2)},
				Utxos:   []*domain.Utxo{newUtxo(accountName, 0, 10*ada)},
			},
		},
		{
			name: "limit reached",
			req: application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(25 * ada)},
				Utxos: []*domain.Utxo{
					newUtxo(accountName, 0, 10*ada),
					newUtxo(accountName, 1, 10*ada),
					newUtxo(accountName, 2, 10*ada),
				},
				Limit: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := application.NewCoinSelectionService(
				lf_selector.NewLargestFirstCoinSelector(),
				singletokenbundle_creator.NewSingleTokenBundleChangeCreator(params),
				params,
			)

			cs, err := svc.GetCoinSelection(tt.req)
			require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			require.Nil(t, cs)
		})
	}
}

func TestGetCoinSelectionConvergence(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		singletokenbundle_creator.NewSingleTokenBundleChangeCreator(params),
		params,
	)

	req := application.CoinSelectionRequest{
		Outputs: []domain.TxOutput{newOutput(9*ada + ada/2)},
		Utxos: []*domain.Utxo{
			newUtxo(accountName, 0, 10*ada),
			newUtxo(accountName, 1, ada),
			newUtxo(accountName, 2, ada/3),
		},
	}

	cs, err := svc.GetCoinSelection(req)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, vouts(cs.SelectedUtxos))
	require.Len(t, cs.ChangeOutputs, 1)
	require.Equal(t, ada+ada/2, cs.ChangeOutputs[0].Value.Lovelace)
	requireBalanced(t, params, req, cs)
}

func TestGetCoinSelectionRequiredUtxos(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		basicchange_creator.NewBasicChangeCreator(params),
		params,
	)

	pool := []*domain.Utxo{
		newUtxo(accountName, 0, 5*ada),
		newUtxo(accountName, 1, 20*ada),
		newUtxo(accountName, 2, 10*ada),
	}
	req := application.CoinSelectionRequest{
		Outputs:       []domain.TxOutput{newOutput(12 * ada)},
		Utxos:         pool,
		RequiredUtxos: []*domain.Utxo{pool[0]},
		ChangeAddress: changeAddress,
	}

	cs, err := svc.GetCoinSelection(req)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, vouts(cs.SelectedUtxos))
	require.Len(t, cs.Inputs, 2)
	require.Equal(t, uint32(0), cs.Inputs[0].TransactionIndex)
	require.NotNil(t, cs.Inputs[0].Output)
	require.Equal(t, changeAddress, cs.ChangeOutputs[0].Address)
	requireBalanced(t, params, req, cs)
}

func TestGetCoinSelectionStakeRegistration(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		basicchange_creator.NewBasicChangeCreator(params),
		params,
	)

	req := application.CoinSelectionRequest{
		Outputs: []domain.TxOutput{newOutput(ada)},
		Utxos: []*domain.Utxo{
			newUtxo(accountName, 0, 3*ada),
			newUtxo(accountName, 1, 5*ada),
		},
		Certificates: []domain.Certificate{
			domain.StakeCertificate{Type: domain.StakeRegistration},
		},
	}

	cs, err := svc.GetCoinSelection(req)
	require.NoError(t, err)
	require.Equal(t, []uint32{1}, vouts(cs.SelectedUtxos))
	require.Len(t, cs.ChangeOutputs, 1)
	// 5 ada in, 1 ada paid, 2 ada deposited.
	require.Equal(t, 2*ada, cs.ChangeOutputs[0].Value.Lovelace)
}

func TestGetCoinSelectionStakeDeregistration(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		basicchange_creator.NewBasicChangeCreator(params),
		params,
	)
	deregistration := []domain.Certificate{
		domain.StakeCertificate{Type: domain.StakeDeregistration},
	}

	tests := []struct {
		name           string
		outputs        []domain.TxOutput
		expectedChange uint64
	}{
		{
			name:           "outputs exceed the refund",
			outputs:        []domain.TxOutput{newOutput(3 * ada)},
			expectedChange: 4 * ada,
		},
		{
			name:           "refund exceeds the outputs",
			outputs:        []domain.TxOutput{newOutput(ada)},
			expectedChange: 6 * ada,
		},
		{
			name:           "deregistration only",
			expectedChange: 7 * ada,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := application.CoinSelectionRequest{
				Outputs:       tt.outputs,
				Utxos:         []*domain.Utxo{newUtxo(accountName, 0, 5*ada)},
				Certificates:  deregistration,
				ChangeAddress: changeAddress,
				FeeBuffer:     ada / 2,
			}

			cs, err := svc.GetCoinSelection(req)
			require.NoError(t, err)
			require.Equal(t, []uint32{0}, vouts(cs.SelectedUtxos))
			require.Len(t, cs.ChangeOutputs, 1)
			require.Equal(t, tt.expectedChange, cs.ChangeOutputs[0].Value.Lovelace)
			requireBalanced(t, params, req, cs)
		})
	}
}

func TestGetCoinSelectionStakeDeregistrationWithoutUtxos(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		basicchange_creator.NewBasicChangeCreator(params),
		params,
	)

	cs, err := svc.GetCoinSelection(application.CoinSelectionRequest{
		Certificates: []domain.Certificate{
			domain.StakeCertificate{Type: domain.StakeDeregistration},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.Nil(t, cs)
}

func TestGetCoinSelectionBasicChangeBelowMin(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		basicchange_creator.NewBasicChangeCreator(params),
		params,
	)

	req := application.CoinSelectionRequest{
		Outputs: []domain.TxOutput{newOutput(9 * ada)},
		Utxos: []*domain.Utxo{
			newUtxo(accountName, 0, 9*ada+ada/2, token("01", 1)),
			newUtxo(accountName, 1, 3*ada),
		},
	}

	cs, err := svc.GetCoinSelection(req)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, vouts(cs.SelectedUtxos))
	require.Len(t, cs.ChangeOutputs, 1)
	require.Equal(t, 3*ada+ada/2, cs.ChangeOutputs[0].Value.Lovelace)
	require.Equal(t, domain.Assets{token("01", 1)}, cs.ChangeOutputs[0].Value.Assets)
	requireBalanced(t, params, req, cs)
}

func TestGetCoinSelectionInvalidTxid(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		basicchange_creator.NewBasicChangeCreator(params),
		params,
	)

	tests := []struct {
		name string
		txid string
	}{
		{"not hex", "zz"},
		{"too short", "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			utxo := newUtxo(accountName, 0, 10*ada)
			utxo.TxID = tt.txid

			cs, err := svc.GetCoinSelection(application.CoinSelectionRequest{
				Outputs: []domain.TxOutput{newOutput(2 * ada)},
				Utxos:   []*domain.Utxo{utxo},
			})
			require.ErrorIs(t, err, application.ErrInvalidTxid)
			require.Nil(t, cs)

			cs, err = svc.GetCoinSelection(application.CoinSelectionRequest{
				Outputs:       []domain.TxOutput{newOutput(2 * ada)},
				Utxos:         []*domain.Utxo{newUtxo(accountName, 1, 10*ada)},
				RequiredUtxos: []*domain.Utxo{utxo},
			})
			require.ErrorIs(t, err, application.ErrInvalidTxid)
			require.Nil(t, cs)
		})
	}
}

func TestGetCoinSelectionNothingToCover(t *testing.T) {
	params := newMockedProtocolParams(ada, 2*ada)
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		basicchange_creator.NewBasicChangeCreator(params),
		params,
	)

	cs, err := svc.GetCoinSelection(application.CoinSelectionRequest{
		Utxos: []*domain.Utxo{newUtxo(accountName, 0, 3*ada)},
	})
	require.NoError(t, err)
	require.Empty(t, cs.SelectedUtxos)
	require.Empty(t, cs.ChangeOutputs)
	require.Empty(t, cs.Inputs)
}

func TestGetCoinSelectionIsDeterministic(t *testing.T) {
	params := protocolparams.NewDefaultProtocolParams()
	svc := application.NewCoinSelectionService(
		lf_selector.NewLargestFirstCoinSelector(),
		singletokenbundle_creator.NewSingleTokenBundleChangeCreator(params),
		params,
	)
	req := application.CoinSelectionRequest{
		Outputs: []domain.TxOutput{newOutput(25*ada, token("01", 3))},
		Utxos: []*domain.Utxo{
			newUtxo(accountName, 0, 10*ada, token("01", 2), token("02", 7)),
			newUtxo(accountName, 1, 10*ada, token("01", 2)),
			newUtxo(accountName, 2, 10*ada),
			newUtxo(accountName, 3, 10*ada, token("03", 1)),
		},
		ChangeAddress: changeAddress,
		FeeBuffer:     ada,
	}

	first, err := svc.GetCoinSelection(req)
	require.NoError(t, err)
	second, err := svc.GetCoinSelection(req)
	require.NoError(t, err)
	require.Equal(t, first, second)
	requireBalanced(t, params, req, first)
}

// requireBalanced checks that inputs equal outputs plus change, net of
// mint and deposits, and that every change output is above its min.
func requireBalanced(
	t *testing.T, params domain.ProtocolParams,
	req application.CoinSelectionRequest, cs *domain.CoinSelection,
) {
	in := domain.BalanceOf(cs.SelectedUtxos)
	out := domain.Balance{Assets: domain.Assets{}}
	for _, o := range req.Outputs {
		out = out.Add(o.Value)
	}
	change := cs.ChangeBalance()

	deposits, refunds := uint64(0), uint64(0)
	for _, c := range req.Certificates {
		if c.HasStakeRegistration() {
			deposits += params.KeyDeposit()
		}
		if c.HasStakeDeregistration() {
			refunds += params.KeyDeposit()
		}
	}
	require.Equal(
		t, in.Lovelace+refunds, out.Lovelace+change.Lovelace+deposits,
	)

	mint := map[string]int64{}
	for _, tk := range req.Mint.Build() {
		mint[tk.PolicyID+tk.Name] += tk.Quantity
	}
	for _, a := range in.Add(out).Assets {
		expected := int64(out.Assets.QuantityOf(a.PolicyID, a.Name)) +
			int64(change.Assets.QuantityOf(a.PolicyID, a.Name)) -
			mint[a.Unit()]
		require.Equal(
			t, expected, int64(in.Assets.QuantityOf(a.PolicyID, a.Name)),
			"asset %s", a.Unit(),
		)
	}

	for _, o := range cs.ChangeOutputs {
		require.GreaterOrEqual(t, o.Value.Lovelace, params.MinLovelace(o))
	}
	if len(cs.ChangeOutputs) > 0 {
		last := cs.ChangeOutputs[len(cs.ChangeOutputs)-1]
		require.GreaterOrEqual(t, last.Value.Lovelace, req.FeeBuffer)
	}

	require.Len(t, cs.Inputs, len(cs.SelectedUtxos))
	for i, u := range cs.SelectedUtxos {
		require.Equal(t, u.VOut, cs.Inputs[i].TransactionIndex)
	}
}
