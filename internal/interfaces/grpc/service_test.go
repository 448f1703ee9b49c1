package grpc_interface

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	appconfig "github.com/vulpemventures/reef/internal/app-config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const (
	testPort      = 18190
	testAccount   = "test"
	testAddress   = "addr_test1vzpwq95z3xyum8vqndgdd9mdnmafh3djcxnc6jemlgdmswcve6tkw"
	testChangeAdr = "addr_test1vq2x8bgfwzq4d6nqqe4j2c5hp0l8xkzv7jpmgyd6qgmf0yqfeqf7p"
)

func TestService(t *testing.T) {
	svc := newTestService(t)
	conn := newTestClientConn(t)
	ctx := context.Background()

	health := healthpb.NewHealthClient(conn)
	res, err := health.Check(ctx, &healthpb.HealthCheckRequest{
		Service: pb.SelectionService_ServiceDesc.ServiceName,
	})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, res.GetStatus())

	utxoClient := pb.NewUtxoServiceClient(conn)
	selectionClient := pb.NewSelectionServiceClient(conn)

	added, err := utxoClient.AddUtxos(ctx, &pb.AddUtxosRequest{
		AccountName: testAccount,
		Utxos: []*pb.Utxo{
			testUtxo(0, 10_000_000),
			testUtxo(1, 5_000_000),
			testUtxo(2, 2_000_000),
		},
	})
	require.NoError(t, err)
	require.Equal(t, int32(3), added.Count)

	balance, err := utxoClient.GetBalance(ctx, &pb.GetBalanceRequest{
		AccountName: testAccount,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(17_000_000), balance.Spendable.Lovelace)

	req := &pb.SelectCoinsRequest{
		AccountName: testAccount,
		Outputs: []*pb.Output{
			{Address: testAddress, Value: &pb.Value{Lovelace: 6_000_000}},
		},
		ChangeAddress: testChangeAdr,
	}

	estimate, err := selectionClient.EstimateChange(ctx, req)
	require.NoError(t, err)
	require.Len(t, estimate.SelectedUtxos, 1)

	selection, err := selectionClient.SelectCoins(ctx, req)
	require.NoError(t, err)
	require.Len(t, selection.SelectedUtxos, 1)
	require.Equal(t, uint64(10_000_000), selection.SelectedUtxos[0].Value.Lovelace)
	require.Len(t, selection.ChangeOutputs, 1)
	require.Equal(t, uint64(4_000_000), selection.ChangeOutputs[0].Value.Lovelace)
	require.Greater(t, selection.ExpirationDate, time.Now().Unix())

	utxos, err := utxoClient.ListUtxos(ctx, &pb.ListUtxosRequest{
		AccountName: testAccount,
	})
	require.NoError(t, err)
	require.Len(t, utxos.SpendableUtxos, 2)
	require.Len(t, utxos.LockedUtxos, 1)

	req.Outputs[0].Value.Lovelace = 100_000_000
	_, err = selectionClient.SelectCoins(ctx, req)
	require.Error(t, err)
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = selectionClient.SelectCoins(ctx, &pb.SelectCoinsRequest{
		AccountName: testAccount,
	})
	require.Error(t, err)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	unlocked, err := utxoClient.UnlockUtxos(ctx, &pb.UnlockUtxosRequest{
		Utxos: []*pb.Outpoint{{
			Txid:  selection.SelectedUtxos[0].Txid,
			Index: selection.SelectedUtxos[0].Index,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, int32(1), unlocked.Count)

	require.NotNil(t, svc.grpcServer)
}

func newTestService(t *testing.T) *service {
	svc, err := NewService(
		ServiceConfig{Port: testPort, NoTLS: true},
		&appconfig.AppConfig{
			UtxoExpiryDuration: time.Minute,
			CoinsPerUTxOByte:   4310,
			KeyDeposit:         2_000_000,
			RepoManagerType:    "inmemory",
		},
	)
	require.NoError(t, err)
	require.NoError(t, svc.Start())
	t.Cleanup(func() {
		svc.healthServer.Shutdown()
		svc.grpcServer.Stop()
	})
	return svc
}

func newTestClientConn(t *testing.T) *grpc.ClientConn {
	conn, err := grpc.Dial(
		fmt.Sprintf("localhost:%d", testPort),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func testUtxo(index uint32, lovelace uint64) *pb.Utxo {
	return &pb.Utxo{
		Txid:    fmt.Sprintf("%064x", 1),
		Index:   index,
		Value:   &pb.Value{Lovelace: lovelace},
		Address: testAddress,
	}
}
