package reefv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SelectionService_SelectCoins_FullMethodName    = "/reef.v1.SelectionService/SelectCoins"
	SelectionService_EstimateChange_FullMethodName = "/reef.v1.SelectionService/EstimateChange"
)

// SelectionServiceClient is the client API for SelectionService.
type SelectionServiceClient interface {
	SelectCoins(ctx context.Context, in *SelectCoinsRequest, opts ...grpc.CallOption) (*SelectCoinsResponse, error)
	EstimateChange(ctx context.Context, in *SelectCoinsRequest, opts ...grpc.CallOption) (*EstimateChangeResponse, error)
}

type selectionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSelectionServiceClient(cc grpc.ClientConnInterface) SelectionServiceClient {
	return &selectionServiceClient{cc}
}

func (c *selectionServiceClient) SelectCoins(ctx context.Context, in *SelectCoinsRequest, opts ...grpc.CallOption) (*SelectCoinsResponse, error) {
	out := new(SelectCoinsResponse)
	if err := c.cc.Invoke(ctx, SelectionService_SelectCoins_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *selectionServiceClient) EstimateChange(ctx context.Context, in *SelectCoinsRequest, opts ...grpc.CallOption) (*EstimateChangeResponse, error) {
	out := new(EstimateChangeResponse)
	if err := c.cc.Invoke(ctx, SelectionService_EstimateChange_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// SelectionServiceServer is the server API for SelectionService.
type SelectionServiceServer interface {
	SelectCoins(context.Context, *SelectCoinsRequest) (*SelectCoinsResponse, error)
	EstimateChange(context.Context, *SelectCoinsRequest) (*EstimateChangeResponse, error)
}

// UnimplementedSelectionServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedSelectionServiceServer struct{}

func (UnimplementedSelectionServiceServer) SelectCoins(context.Context, *SelectCoinsRequest) (*SelectCoinsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SelectCoins not implemented")
}
func (UnimplementedSelectionServiceServer) EstimateChange(context.Context, *SelectCoinsRequest) (*EstimateChangeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EstimateChange not implemented")
}

func RegisterSelectionServiceServer(s grpc.ServiceRegistrar, srv SelectionServiceServer) {
	s.RegisterService(&SelectionService_ServiceDesc, srv)
}

func _SelectionService_SelectCoins_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SelectCoinsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SelectionServiceServer).SelectCoins(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SelectionService_SelectCoins_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SelectionServiceServer).SelectCoins(ctx, req.(*SelectCoinsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SelectionService_EstimateChange_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SelectCoinsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SelectionServiceServer).EstimateChange(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SelectionService_EstimateChange_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SelectionServiceServer).EstimateChange(ctx, req.(*SelectCoinsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var SelectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "reef.v1.SelectionService",
	HandlerType: (*SelectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SelectCoins", Handler: _SelectionService_SelectCoins_Handler},
		{MethodName: "EstimateChange", Handler: _SelectionService_EstimateChange_Handler},
	},
	Streams:  []grpc.StreamDesc{},
}
