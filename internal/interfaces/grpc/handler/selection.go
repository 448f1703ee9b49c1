package grpc_handler

import (
	"context"

	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	"github.com/vulpemventures/reef/internal/core/application"
)

type selection struct {
	appSvc *application.SelectionService
}

func NewSelectionHandler(
	appSvc *application.SelectionService,
) pb.SelectionServiceServer {
	return &selection{appSvc}
}

func (s *selection) SelectCoins(
	ctx context.Context, req *pb.SelectCoinsRequest,
) (*pb.SelectCoinsResponse, error) {
	args, err := parseSelectCoinsRequest(req)
	if err != nil {
		return nil, invalidArgument(err)
	}

	info, err := s.appSvc.SelectCoins(ctx, args)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &pb.SelectCoinsResponse{
		SelectedUtxos:  toUtxos(info.SelectedUtxos),
		ChangeOutputs:  toOutputs(info.ChangeOutputs),
		Inputs:         toInputs(info.Inputs),
		ExpirationDate: info.ExpirationDate,
	}, nil
}

func (s *selection) EstimateChange(
	ctx context.Context, req *pb.SelectCoinsRequest,
) (*pb.EstimateChangeResponse, error) {
	args, err := parseSelectCoinsRequest(req)
	if err != nil {
		return nil, invalidArgument(err)
	}

	cs, err := s.appSvc.EstimateChange(ctx, args)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &pb.EstimateChangeResponse{
		SelectedUtxos: toUtxos(cs.SelectedUtxos),
		ChangeOutputs: toOutputs(cs.ChangeOutputs),
		Inputs:        toInputs(cs.Inputs),
	}, nil
}
