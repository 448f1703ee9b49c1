package grpc_handler

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	"github.com/vulpemventures/reef/internal/core/application"
	"github.com/vulpemventures/reef/internal/core/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var certificateTypes = map[string]domain.StakeCertificateType{
	"stake_registration":   domain.StakeRegistration,
	"stake_deregistration": domain.StakeDeregistration,
	"stake_delegation":     domain.StakeDelegation,
}

func parseAccountName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("missing account name")
	}
	return name, nil
}

func parseValue(value *pb.Value) domain.Balance {
	balance := domain.Balance{Assets: domain.Assets{}}
	if value == nil {
		return balance
	}
	balance.Lovelace = value.Lovelace
	for _, a := range value.Assets {
		if a == nil {
			continue
		}
		balance.Assets = append(balance.Assets, domain.Asset{
			PolicyID: a.PolicyId,
			Name:     a.AssetName,
			Quantity: a.Quantity,
		})
	}
	return balance
}

func parseHex(str, field string) ([]byte, error) {
	if str == "" {
		return nil, nil
	}
	buf, err := hex.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: must be in hex format", field)
	}
	return buf, nil
}

func parseUtxos(utxos []*pb.Utxo) ([]*domain.Utxo, error) {
	list := make([]*domain.Utxo, 0, len(utxos))
	for i, u := range utxos {
		if u == nil {
			return nil, fmt.Errorf("utxo %d is nil", i)
		}
		datum, err := parseHex(u.DatumOption, "datum option")
		if err != nil {
			return nil, fmt.Errorf("utxo %d: %s", i, err)
		}
		scriptRef, err := parseHex(u.ScriptReference, "script reference")
		if err != nil {
			return nil, fmt.Errorf("utxo %d: %s", i, err)
		}
		list = append(list, &domain.Utxo{
			UtxoKey:         domain.UtxoKey{TxID: strings.ToLower(u.Txid), VOut: u.Index},
			Balance:         parseValue(u.Value),
			OutputAddress:   u.Address,
			DatumOption:     datum,
			ScriptReference: scriptRef,
		})
	}
	return list, nil
}

func parseOutpoints(outpoints []*pb.Outpoint) ([]domain.UtxoKey, error) {
	if len(outpoints) <= 0 {
		return nil, fmt.Errorf("missing utxos")
	}
	keys := make([]domain.UtxoKey, 0, len(outpoints))
	for i, o := range outpoints {
		if o == nil {
			return nil, fmt.Errorf("utxo %d is nil", i)
		}
		keys = append(keys, domain.UtxoKey{
			TxID: strings.ToLower(o.Txid), VOut: o.Index,
		})
	}
	return keys, nil
}

func parseOutputs(outputs []*pb.Output) ([]domain.TxOutput, error) {
	list := make([]domain.TxOutput, 0, len(outputs))
	for i, out := range outputs {
		if out == nil {
			return nil, fmt.Errorf("output %d is nil", i)
		}
		datum, err := parseHex(out.DatumOption, "datum option")
		if err != nil {
			return nil, fmt.Errorf("output %d: %s", i, err)
		}
		scriptRef, err := parseHex(out.ScriptReference, "script reference")
		if err != nil {
			return nil, fmt.Errorf("output %d: %s", i, err)
		}
		list = append(list, domain.TxOutput{
			Address:         out.Address,
			Value:           parseValue(out.Value),
			DatumOption:     datum,
			ScriptReference: scriptRef,
		})
	}
	return list, nil
}

func parseMint(tokens []*pb.MintToken) *domain.TokenBundle {
	if len(tokens) <= 0 {
		return nil
	}
	bundle := domain.NewTokenBundle()
	for _, t := range tokens {
		if t == nil {
			continue
		}
		bundle.AddToken(t.PolicyId, t.AssetName, t.Quantity)
	}
	return bundle
}

func parseCertificates(certs []*pb.Certificate) ([]domain.Certificate, error) {
	list := make([]domain.Certificate, 0, len(certs))
	for i, c := range certs {
		if c == nil {
			return nil, fmt.Errorf("certificate %d is nil", i)
		}
		certType, ok := certificateTypes[c.Type]
		if !ok {
			return nil, fmt.Errorf("certificate %d: unknown type %q", i, c.Type)
		}
		list = append(list, domain.StakeCertificate{
			Type:            certType,
			StakeCredential: c.StakeCredential,
		})
	}
	return list, nil
}

func parseSelectCoinsRequest(req *pb.SelectCoinsRequest) (application.SelectCoinsArgs, error) {
	var args application.SelectCoinsArgs

	account, err := parseAccountName(req.AccountName)
	if err != nil {
		return args, err
	}
	outputs, err := parseOutputs(req.Outputs)
	if err != nil {
		return args, err
	}
	certificates, err := parseCertificates(req.Certificates)
	if err != nil {
		return args, err
	}
	var requiredUtxos []domain.UtxoKey
	if len(req.RequiredUtxos) > 0 {
		if requiredUtxos, err = parseOutpoints(req.RequiredUtxos); err != nil {
			return args, err
		}
	}

	coinSelectionStrategy := application.CoinSelectionStrategyLargestFirst
	if req.CoinSelectionStrategy != "" {
		if coinSelectionStrategy, err = application.CoinSelectionStrategyFromString(
			req.CoinSelectionStrategy,
		); err != nil {
			return args, err
		}
	}
	changeCreationStrategy := application.ChangeCreationStrategySingleTokenBundle
	if req.ChangeCreationStrategy != "" {
		if changeCreationStrategy, err = application.ChangeCreationStrategyFromString(
			req.ChangeCreationStrategy,
		); err != nil {
			return args, err
		}
	}

	return application.SelectCoinsArgs{
		Account:                account,
		Outputs:                outputs,
		ChangeAddress:          req.ChangeAddress,
		Mint:                   parseMint(req.Mint),
		Certificates:           certificates,
		RequiredUtxos:          requiredUtxos,
		FeeBuffer:              req.FeeBuffer,
		Limit:                  int(req.Limit),
		CoinSelectionStrategy:  coinSelectionStrategy,
		ChangeCreationStrategy: changeCreationStrategy,
	}, nil
}

func toValue(balance domain.Balance) *pb.Value {
	value := &pb.Value{Lovelace: balance.Lovelace}
	for _, a := range balance.Assets {
		value.Assets = append(value.Assets, &pb.Asset{
			PolicyId:  a.PolicyID,
			AssetName: a.Name,
			Quantity:  a.Quantity,
		})
	}
	return value
}

func toUtxos(utxos []*domain.Utxo) []*pb.Utxo {
	list := make([]*pb.Utxo, 0, len(utxos))
	for _, u := range utxos {
		list = append(list, &pb.Utxo{
			Txid:            u.TxID,
			Index:           u.VOut,
			AccountName:     u.Account,
			Value:           toValue(u.Balance),
			Address:         u.OutputAddress,
			DatumOption:     hex.EncodeToString(u.DatumOption),
			ScriptReference: hex.EncodeToString(u.ScriptReference),
			LockExpiresAt:   u.LockExpiryTimestamp,
		})
	}
	return list
}

func toUtxosInfo(utxos []domain.UtxoInfo) []*pb.Utxo {
	list := make([]*pb.Utxo, 0, len(utxos))
	for _, u := range utxos {
		list = append(list, &pb.Utxo{
			Txid:          u.TxID,
			Index:         u.VOut,
			AccountName:   u.Account,
			Value:         toValue(u.Balance),
			LockExpiresAt: u.LockExpiryTimestamp,
		})
	}
	return list
}

func toOutput(out domain.TxOutput) *pb.Output {
	return &pb.Output{
		Address:         out.Address,
		Value:           toValue(out.Value),
		DatumOption:     hex.EncodeToString(out.DatumOption),
		ScriptReference: hex.EncodeToString(out.ScriptReference),
	}
}

func toOutputs(outputs []domain.TxOutput) []*pb.Output {
	list := make([]*pb.Output, 0, len(outputs))
	for _, out := range outputs {
		list = append(list, toOutput(out))
	}
	return list
}

func toInputs(inputs []domain.TxInput) []*pb.Input {
	list := make([]*pb.Input, 0, len(inputs))
	for _, in := range inputs {
		input := &pb.Input{
			Txid:  hex.EncodeToString(in.TransactionID),
			Index: in.TransactionIndex,
		}
		if in.Output != nil {
			input.Output = toOutput(*in.Output)
		}
		list = append(list, input)
	}
	return list
}

func toUtxoEventType(eventType domain.UtxoEventType) string {
	switch eventType {
	case domain.UtxoAdded:
		return "added"
	case domain.UtxoLocked:
		return "locked"
	case domain.UtxoUnlocked:
		return "unlocked"
	case domain.UtxoSpent:
		return "spent"
	default:
		return "unspecified"
	}
}

// toStatusError maps application errors to gRPC status errors.
func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, application.ErrRequiredUtxoNotSpendable):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, application.ErrRequiredUtxoNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, application.ErrMissingAccount),
		errors.Is(err, application.ErrMissingChangeAddress),
		errors.Is(err, application.ErrMissingOutputAddress),
		errors.Is(err, application.ErrMissingUtxos),
		errors.Is(err, application.ErrInvalidTxid),
		errors.Is(err, application.ErrUnknownCoinSelectionStrategy),
		errors.Is(err, application.ErrUnknownChangeCreationStrategy):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}
