package reefv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	NotificationService_UtxosNotifications_FullMethodName = "/reef.v1.NotificationService/UtxosNotifications"
)

// NotificationServiceClient is the client API for NotificationService.
type NotificationServiceClient interface {
	UtxosNotifications(ctx context.Context, in *UtxosNotificationsRequest, opts ...grpc.CallOption) (NotificationService_UtxosNotificationsClient, error)
}

type notificationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewNotificationServiceClient(cc grpc.ClientConnInterface) NotificationServiceClient {
	return &notificationServiceClient{cc}
}

func (c *notificationServiceClient) UtxosNotifications(ctx context.Context, in *UtxosNotificationsRequest, opts ...grpc.CallOption) (NotificationService_UtxosNotificationsClient, error) {
	stream, err := c.cc.NewStream(ctx, &NotificationService_ServiceDesc.Streams[0], NotificationService_UtxosNotifications_FullMethodName, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &notificationServiceUtxosNotificationsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type NotificationService_UtxosNotificationsClient interface {
	Recv() (*UtxosNotificationsResponse, error)
	grpc.ClientStream
}

type notificationServiceUtxosNotificationsClient struct {
	grpc.ClientStream
}

func (x *notificationServiceUtxosNotificationsClient) Recv() (*UtxosNotificationsResponse, error) {
	m := new(UtxosNotificationsResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// NotificationServiceServer is the server API for NotificationService.
type NotificationServiceServer interface {
	UtxosNotifications(*UtxosNotificationsRequest, NotificationService_UtxosNotificationsServer) error
}

// UnimplementedNotificationServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedNotificationServiceServer struct{}

func (UnimplementedNotificationServiceServer) UtxosNotifications(*UtxosNotificationsRequest, NotificationService_UtxosNotificationsServer) error {
	return status.Errorf(codes.Unimplemented, "method UtxosNotifications not implemented")
}

func RegisterNotificationServiceServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&NotificationService_ServiceDesc, srv)
}

func _NotificationService_UtxosNotifications_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(UtxosNotificationsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(NotificationServiceServer).UtxosNotifications(m, &notificationServiceUtxosNotificationsServer{stream})
}

type NotificationService_UtxosNotificationsServer interface {
	Send(*UtxosNotificationsResponse) error
	grpc.ServerStream
}

type notificationServiceUtxosNotificationsServer struct {
	grpc.ServerStream
}

func (x *notificationServiceUtxosNotificationsServer) Send(m *UtxosNotificationsResponse) error {
	return x.ServerStream.SendMsg(m)
}

var NotificationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "reef.v1.NotificationService",
	HandlerType: (*NotificationServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "UtxosNotifications",
			Handler:       _NotificationService_UtxosNotifications_Handler,
			ServerStreams: true,
		},
	},
}
