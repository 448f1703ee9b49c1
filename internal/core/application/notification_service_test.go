package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/reef/internal/core/application"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/infrastructure/storage/db/inmemory"
)

func TestNotificationService(t *testing.T) {
	repoManager := inmemory.NewRepoManager()
	svc := application.NewNotificationService(repoManager)

	chEvents, err := svc.GetUtxoChannel(ctx)
	require.NoError(t, err)
	require.NotNil(t, chEvents)

	received := make(chan domain.UtxoEvent, 1)
	go func() {
		received <- <-chEvents
	}()

	utxos := []*domain.Utxo{newUtxo(accountName, 0, ada)}
	count, err := repoManager.UtxoRepository().AddUtxos(ctx, utxos)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	select {
	case event := <-received:
		require.Equal(t, domain.UtxoAdded, event.EventType)
		require.Len(t, event.Utxos, 1)
		require.Equal(t, utxos[0].Key(), event.Utxos[0].Key())
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for utxo event")
	}
}
