package grpc_handler

import (
	"context"
	"strings"

	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	"github.com/vulpemventures/reef/internal/core/application"
	"github.com/vulpemventures/reef/internal/core/domain"
)

type utxo struct {
	appSvc *application.UtxoService
}

func NewUtxoHandler(appSvc *application.UtxoService) pb.UtxoServiceServer {
	return &utxo{appSvc}
}

func (u *utxo) AddUtxos(
	ctx context.Context, req *pb.AddUtxosRequest,
) (*pb.AddUtxosResponse, error) {
	accountName, err := parseAccountName(req.AccountName)
	if err != nil {
		return nil, invalidArgument(err)
	}
	utxos, err := parseUtxos(req.Utxos)
	if err != nil {
		return nil, invalidArgument(err)
	}

	count, err := u.appSvc.AddUtxos(ctx, accountName, utxos)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &pb.AddUtxosResponse{Count: int32(count)}, nil
}

func (u *utxo) ListUtxos(
	ctx context.Context, req *pb.ListUtxosRequest,
) (*pb.ListUtxosResponse, error) {
	accountName, err := parseAccountName(req.AccountName)
	if err != nil {
		return nil, invalidArgument(err)
	}

	info, err := u.appSvc.ListUtxos(ctx, accountName)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &pb.ListUtxosResponse{
		SpendableUtxos: toUtxos(info.Spendable),
		LockedUtxos:    toUtxos(info.Locked),
	}, nil
}

func (u *utxo) GetBalance(
	ctx context.Context, req *pb.GetBalanceRequest,
) (*pb.GetBalanceResponse, error) {
	accountName, err := parseAccountName(req.AccountName)
	if err != nil {
		return nil, invalidArgument(err)
	}

	balance, err := u.appSvc.GetBalance(ctx, accountName)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &pb.GetBalanceResponse{
		Spendable: toValue(balance.Spendable),
		Locked:    toValue(balance.Locked),
	}, nil
}

func (u *utxo) UnlockUtxos(
	ctx context.Context, req *pb.UnlockUtxosRequest,
) (*pb.UnlockUtxosResponse, error) {
	keys, err := parseOutpoints(req.Utxos)
	if err != nil {
		return nil, invalidArgument(err)
	}

	count, err := u.appSvc.UnlockUtxos(ctx, keys)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &pb.UnlockUtxosResponse{Count: int32(count)}, nil
}

func (u *utxo) SpendUtxos(
	ctx context.Context, req *pb.SpendUtxosRequest,
) (*pb.SpendUtxosResponse, error) {
	keys, err := parseOutpoints(req.Utxos)
	if err != nil {
		return nil, invalidArgument(err)
	}

	count, err := u.appSvc.SpendUtxos(ctx, keys, domain.UtxoStatus{
		Txid:        strings.ToLower(req.Txid),
		BlockHeight: req.BlockHeight,
		BlockTime:   req.BlockTime,
		BlockHash:   req.BlockHash,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &pb.SpendUtxosResponse{Count: int32(count)}, nil
}

func (u *utxo) DeleteUtxos(
	ctx context.Context, req *pb.DeleteUtxosRequest,
) (*pb.DeleteUtxosResponse, error) {
	accountName, err := parseAccountName(req.AccountName)
	if err != nil {
		return nil, invalidArgument(err)
	}

	if err := u.appSvc.DeleteUtxos(ctx, accountName); err != nil {
		return nil, toStatusError(err)
	}
	return &pb.DeleteUtxosResponse{}, nil
}
