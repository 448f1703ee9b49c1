package grpc_handler

import (
	"fmt"

	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	"github.com/vulpemventures/reef/internal/core/application"
)

var ErrStreamConnectionClosed = fmt.Errorf("connection closed on by server")

type notification struct {
	appSvc  *application.NotificationService
	chClose chan struct{}
}

func NewNotificationHandler(
	appSvc *application.NotificationService, chClose chan struct{},
) pb.NotificationServiceServer {
	return &notification{appSvc, chClose}
}

func (n notification) UtxosNotifications(
	_ *pb.UtxosNotificationsRequest,
	stream pb.NotificationService_UtxosNotificationsServer,
) error {
	chUtxoEvents, err := n.appSvc.GetUtxoChannel(stream.Context())
	if err != nil {
		return err
	}

	for {
		select {
		case e, ok := <-chUtxoEvents:
			if !ok {
				return ErrStreamConnectionClosed
			}
			if err := stream.Send(&pb.UtxosNotificationsResponse{
				EventType: toUtxoEventType(e.EventType),
				Utxos:     toUtxosInfo(e.Utxos),
			}); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return nil
		case <-n.chClose:
			return ErrStreamConnectionClosed
		}
	}
}
