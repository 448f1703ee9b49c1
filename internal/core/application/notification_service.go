package application

import (
	"context"

	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

// Notification service has the very simple task of making the event channel
// of the used domain.UtxoRepository accessible by external clients so that
// they can get real-time updates whenever utxos are added, locked, unlocked
// or spent.
type NotificationService struct {
	repoManager ports.RepoManager
}

func NewNotificationService(
	repoManager ports.RepoManager,
) *NotificationService {
	return &NotificationService{repoManager}
}

func (ns *NotificationService) GetUtxoChannel(
	_ context.Context,
) (chan domain.UtxoEvent, error) {
	return ns.repoManager.UtxoRepository().GetEventChannel(), nil
}
