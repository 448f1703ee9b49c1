package db_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

const (
	policyID      = "1d6445ddeda578117f393848e685128f1e78ad0c4e48129c5964dc2e"
	tokenName     = "74657374"
	outputAddress = "addr_test1vqeux7xwusdju9dvsj8h7mca9aup2k439kfmwy773xxc2hcu7zy99"
)

var (
	accountName      = "test1"
	wrongAccountName = "test2"
	newUtxos         []*domain.Utxo
	utxoKeys         []domain.UtxoKey
	accountBalance   domain.Balance
	spentTxid        = randomHex(32)
)

func TestUtxoRepository(t *testing.T) {
	repositories, err := newUtxoRepositories(
		func(repoType string) ports.UtxoEventHandler {
			return func(event domain.UtxoEvent) {
				t.Logf("received event from %s repo: %+v\n", repoType, event)
			}
		},
	)
	require.NoError(t, err)

	for _, name := range []string{"inmemory", "badger", "postgres"} {
		repo, ok := repositories[name]
		t.Run(name, func(t *testing.T) {
			if !ok {
				t.Skipf("%s not set, skipping", pgHostEnv)
			}
			testUtxoRepository(t, repo)
		})
	}
}

func testUtxoRepository(t *testing.T, repo domain.UtxoRepository) {
	newUtxos, utxoKeys, accountBalance = randomUtxosForAccount(accountName)

	testAddAndGetUtxos(t, repo)

	testGetBalanceForAccount(t, repo)

	testLockUtxos(t, repo)

	testUnlockUtxos(t, repo)

	testSpendUtxos(t, repo)

	testDeleteUtxos(t, repo)

	testMaxAssetQuantity(t, repo)
}

func testAddAndGetUtxos(t *testing.T, repo domain.UtxoRepository) {
	t.Run("add_utxos and get_utxos", func(t *testing.T) {
		count, err := repo.AddUtxos(ctx, newUtxos)
		require.NoError(t, err)
		require.Equal(t, len(newUtxos), count)

		count, err = repo.AddUtxos(ctx, newUtxos)
		require.NoError(t, err)
		require.Zero(t, count)

		utxos := repo.GetAllUtxos(ctx)
		require.Len(t, utxos, len(newUtxos))

		utxos, err = repo.GetSpendableUtxosForAccount(ctx, accountName)
		require.NoError(t, err)
		require.Len(t, utxos, len(newUtxos))
		for i, u := range utxos {
			require.Equal(t, newUtxos[i].Key(), u.Key())
			require.Exactly(t, newUtxos[i].Balance, u.Balance)
			require.Equal(t, outputAddress, u.OutputAddress)
		}

		utxos, err = repo.GetSpendableUtxosForAccount(ctx, wrongAccountName)
		require.NoError(t, err)
		require.Empty(t, utxos)

		utxos, err = repo.GetLockedUtxosForAccount(ctx, accountName)
		require.NoError(t, err)
		require.Empty(t, utxos)

		utxos, err = repo.GetUtxosByKey(ctx, utxoKeys)
		require.NoError(t, err)
		require.Len(t, utxos, len(newUtxos))

		otherKeys := []domain.UtxoKey{randomKey()}
		utxos, err = repo.GetUtxosByKey(ctx, otherKeys)
		require.NoError(t, err)
		require.Empty(t, utxos)

		allKeys := append(append([]domain.UtxoKey{}, utxoKeys...), otherKeys...)
		utxos, err = repo.GetUtxosByKey(ctx, allKeys)
		require.NoError(t, err)
		require.Len(t, utxos, len(newUtxos))
	})
}

func testGetBalanceForAccount(t *testing.T, repo domain.UtxoRepository) {
	t.Run("get_balance_for_account", func(t *testing.T) {
		balance, err := repo.GetBalanceForAccount(ctx, accountName)
		require.NoError(t, err)
		require.NotNil(t, balance)
		require.Exactly(t, accountBalance, balance.Spendable)
		require.True(t, balance.Locked.IsZero())

		balance, err = repo.GetBalanceForAccount(ctx, wrongAccountName)
		require.NoError(t, err)
		require.True(t, balance.Total().IsZero())
	})
}

func testLockUtxos(t *testing.T, repo domain.UtxoRepository) {
	t.Run("lock_utxos", func(t *testing.T) {
		now := time.Now().Unix()
		expiry := now + 60
		count, err := repo.LockUtxos(ctx, utxoKeys[:2], now, expiry)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		count, err = repo.LockUtxos(ctx, utxoKeys[:2], now, expiry)
		require.NoError(t, err)
		require.Zero(t, count)

		utxos, err := repo.GetLockedUtxosForAccount(ctx, accountName)
		require.NoError(t, err)
		require.Len(t, utxos, 2)
		for _, u := range utxos {
			require.Equal(t, now, u.LockTimestamp)
			require.Equal(t, expiry, u.LockExpiryTimestamp)
		}

		utxos, err = repo.GetSpendableUtxosForAccount(ctx, accountName)
		require.NoError(t, err)
		require.Len(t, utxos, len(newUtxos)-2)

		balance, err := repo.GetBalanceForAccount(ctx, accountName)
		require.NoError(t, err)
		require.False(t, balance.Locked.IsZero())
		require.Exactly(t, accountBalance.Lovelace, balance.Total().Lovelace)
	})
}

func testUnlockUtxos(t *testing.T, repo domain.UtxoRepository) {
	t.Run("unlock_utxos", func(t *testing.T) {
		count, err := repo.UnlockUtxos(ctx, utxoKeys)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		count, err = repo.UnlockUtxos(ctx, utxoKeys)
		require.NoError(t, err)
		require.Zero(t, count)

		utxos, err := repo.GetLockedUtxosForAccount(ctx, accountName)
		require.NoError(t, err)
		require.Empty(t, utxos)
	})
}

func testSpendUtxos(t *testing.T, repo domain.UtxoRepository) {
	t.Run("spend_utxos", func(t *testing.T) {
		status := domain.UtxoStatus{Txid: spentTxid}
		count, err := repo.SpendUtxos(ctx, utxoKeys[:1], status)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		count, err = repo.SpendUtxos(ctx, utxoKeys[:1], status)
		require.NoError(t, err)
		require.Zero(t, count)

		utxos, err := repo.GetUtxosByKey(ctx, utxoKeys[:1])
		require.NoError(t, err)
		require.Len(t, utxos, 1)
		require.True(t, utxos[0].IsSpent())
		require.Equal(t, spentTxid, utxos[0].SpentStatus.Txid)

		utxos, err = repo.GetSpendableUtxosForAccount(ctx, accountName)
		require.NoError(t, err)
		require.Len(t, utxos, len(newUtxos)-1)

		count, err = repo.LockUtxos(ctx, utxoKeys[:1], time.Now().Unix(), 0)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

func testDeleteUtxos(t *testing.T, repo domain.UtxoRepository) {
	t.Run("delete_utxos_for_account", func(t *testing.T) {
		err := repo.DeleteUtxosForAccount(ctx, accountName)
		require.NoError(t, err)

		utxos, err := repo.GetUtxosByKey(ctx, utxoKeys)
		require.NoError(t, err)
		require.Empty(t, utxos)

		require.Empty(t, repo.GetAllUtxos(ctx))
	})
}

func testMaxAssetQuantity(t *testing.T, repo domain.UtxoRepository) {
	t.Run("max_asset_quantity", func(t *testing.T) {
		utxo := &domain.Utxo{
			UtxoKey: randomKey(),
			Account: accountName,
			Balance: domain.Balance{
				Lovelace: 45_000_000_000_000_000,
				Assets: domain.Assets{
					{PolicyID: policyID, Name: tokenName, Quantity: math.MaxUint64},
				},
			},
			OutputAddress: outputAddress,
		}
		count, err := repo.AddUtxos(ctx, []*domain.Utxo{utxo})
		require.NoError(t, err)
		require.Equal(t, 1, count)

		utxos, err := repo.GetUtxosByKey(ctx, []domain.UtxoKey{utxo.Key()})
		require.NoError(t, err)
		require.Len(t, utxos, 1)
		require.Exactly(t, utxo.Balance, utxos[0].Balance)

		err = repo.DeleteUtxosForAccount(ctx, accountName)
		require.NoError(t, err)
	})
}
