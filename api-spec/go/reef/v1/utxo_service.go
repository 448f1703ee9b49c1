package reefv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	UtxoService_AddUtxos_FullMethodName    = "/reef.v1.UtxoService/AddUtxos"
	UtxoService_ListUtxos_FullMethodName   = "/reef.v1.UtxoService/ListUtxos"
	UtxoService_GetBalance_FullMethodName  = "/reef.v1.UtxoService/GetBalance"
	UtxoService_UnlockUtxos_FullMethodName = "/reef.v1.UtxoService/UnlockUtxos"
	UtxoService_SpendUtxos_FullMethodName  = "/reef.v1.UtxoService/SpendUtxos"
	UtxoService_DeleteUtxos_FullMethodName = "/reef.v1.UtxoService/DeleteUtxos"
)

// UtxoServiceClient is the client API for UtxoService.
type UtxoServiceClient interface {
	AddUtxos(ctx context.Context, in *AddUtxosRequest, opts ...grpc.CallOption) (*AddUtxosResponse, error)
	ListUtxos(ctx context.Context, in *ListUtxosRequest, opts ...grpc.CallOption) (*ListUtxosResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	UnlockUtxos(ctx context.Context, in *UnlockUtxosRequest, opts ...grpc.CallOption) (*UnlockUtxosResponse, error)
	SpendUtxos(ctx context.Context, in *SpendUtxosRequest, opts ...grpc.CallOption) (*SpendUtxosResponse, error)
	DeleteUtxos(ctx context.Context, in *DeleteUtxosRequest, opts ...grpc.CallOption) (*DeleteUtxosResponse, error)
}

type utxoServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUtxoServiceClient(cc grpc.ClientConnInterface) UtxoServiceClient {
	return &utxoServiceClient{cc}
}

func (c *utxoServiceClient) AddUtxos(ctx context.Context, in *AddUtxosRequest, opts ...grpc.CallOption) (*AddUtxosResponse, error) {
	out := new(AddUtxosResponse)
	if err := c.cc.Invoke(ctx, UtxoService_AddUtxos_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *utxoServiceClient) ListUtxos(ctx context.Context, in *ListUtxosRequest, opts ...grpc.CallOption) (*ListUtxosResponse, error) {
	out := new(ListUtxosResponse)
	if err := c.cc.Invoke(ctx, UtxoService_ListUtxos_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *utxoServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	out := new(GetBalanceResponse)
	if err := c.cc.Invoke(ctx, UtxoService_GetBalance_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *utxoServiceClient) UnlockUtxos(ctx context.Context, in *UnlockUtxosRequest, opts ...grpc.CallOption) (*UnlockUtxosResponse, error) {
	out := new(UnlockUtxosResponse)
	if err := c.cc.Invoke(ctx, UtxoService_UnlockUtxos_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *utxoServiceClient) SpendUtxos(ctx context.Context, in *SpendUtxosRequest, opts ...grpc.CallOption) (*SpendUtxosResponse, error) {
	out := new(SpendUtxosResponse)
	if err := c.cc.Invoke(ctx, UtxoService_SpendUtxos_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *utxoServiceClient) DeleteUtxos(ctx context.Context, in *DeleteUtxosRequest, opts ...grpc.CallOption) (*DeleteUtxosResponse, error) {
	out := new(DeleteUtxosResponse)
	if err := c.cc.Invoke(ctx, UtxoService_DeleteUtxos_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// UtxoServiceServer is the server API for UtxoService.
type UtxoServiceServer interface {
	AddUtxos(context.Context, *AddUtxosRequest) (*AddUtxosResponse, error)
	ListUtxos(context.Context, *ListUtxosRequest) (*ListUtxosResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	UnlockUtxos(context.Context, *UnlockUtxosRequest) (*UnlockUtxosResponse, error)
	SpendUtxos(context.Context, *SpendUtxosRequest) (*SpendUtxosResponse, error)
	DeleteUtxos(context.Context, *DeleteUtxosRequest) (*DeleteUtxosResponse, error)
}

// UnimplementedUtxoServiceServer can be embedded to have forward compatible
// implementations.
type UnimplementedUtxoServiceServer struct{}

func (UnimplementedUtxoServiceServer) AddUtxos(context.Context, *AddUtxosRequest) (*AddUtxosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddUtxos not implemented")
}
func (UnimplementedUtxoServiceServer) ListUtxos(context.Context, *ListUtxosRequest) (*ListUtxosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListUtxos not implemented")
}
func (UnimplementedUtxoServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedUtxoServiceServer) UnlockUtxos(context.Context, *UnlockUtxosRequest) (*UnlockUtxosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UnlockUtxos not implemented")
}
func (UnimplementedUtxoServiceServer) SpendUtxos(context.Context, *SpendUtxosRequest) (*SpendUtxosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SpendUtxos not implemented")
}
func (UnimplementedUtxoServiceServer) DeleteUtxos(context.Context, *DeleteUtxosRequest) (*DeleteUtxosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteUtxos not implemented")
}

func RegisterUtxoServiceServer(s grpc.ServiceRegistrar, srv UtxoServiceServer) {
	s.RegisterService(&UtxoService_ServiceDesc, srv)
}

func _UtxoService_AddUtxos_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddUtxosRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UtxoServiceServer).AddUtxos(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UtxoService_AddUtxos_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UtxoServiceServer).AddUtxos(ctx, req.(*AddUtxosRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UtxoService_ListUtxos_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListUtxosRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UtxoServiceServer).ListUtxos(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UtxoService_ListUtxos_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UtxoServiceServer).ListUtxos(ctx, req.(*ListUtxosRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UtxoService_GetBalance_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UtxoServiceServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UtxoService_GetBalance_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UtxoServiceServer).GetBalance(ctx, req.(*GetBalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UtxoService_UnlockUtxos_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UnlockUtxosRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UtxoServiceServer).UnlockUtxos(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UtxoService_UnlockUtxos_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UtxoServiceServer).UnlockUtxos(ctx, req.(*UnlockUtxosRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UtxoService_SpendUtxos_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SpendUtxosRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UtxoServiceServer).SpendUtxos(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UtxoService_SpendUtxos_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UtxoServiceServer).SpendUtxos(ctx, req.(*SpendUtxosRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UtxoService_DeleteUtxos_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteUtxosRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UtxoServiceServer).DeleteUtxos(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UtxoService_DeleteUtxos_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UtxoServiceServer).DeleteUtxos(ctx, req.(*DeleteUtxosRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var UtxoService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "reef.v1.UtxoService",
	HandlerType: (*UtxoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddUtxos", Handler: _UtxoService_AddUtxos_Handler},
		{MethodName: "ListUtxos", Handler: _UtxoService_ListUtxos_Handler},
		{MethodName: "GetBalance", Handler: _UtxoService_GetBalance_Handler},
		{MethodName: "UnlockUtxos", Handler: _UtxoService_UnlockUtxos_Handler},
		{MethodName: "SpendUtxos", Handler: _UtxoService_SpendUtxos_Handler},
		{MethodName: "DeleteUtxos", Handler: _UtxoService_DeleteUtxos_Handler},
	},
	Streams:  []grpc.StreamDesc{},
}

// withCodec makes the call use the JSON codec unless the caller already
// picked one.
func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
