package postgresdb

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/infrastructure/storage/db/postgres/queries"
)

type utxoRepositoryPg struct {
	pgxPool          *pgxpool.Pool
	querier          *queries.Queries
	chLock           *sync.Mutex
	chEvents         chan domain.UtxoEvent
	externalChEvents chan domain.UtxoEvent
}

func NewUtxoRepositoryPgImpl(pgxPool *pgxpool.Pool) domain.UtxoRepository {
	return newUtxoRepositoryPgImpl(pgxPool)
}

func newUtxoRepositoryPgImpl(pgxPool *pgxpool.Pool) *utxoRepositoryPg {
	return &utxoRepositoryPg{
		pgxPool:          pgxPool,
		querier:          queries.New(pgxPool),
		chLock:           &sync.Mutex{},
		chEvents:         make(chan domain.UtxoEvent),
		externalChEvents: make(chan domain.UtxoEvent),
	}
}

func (u *utxoRepositoryPg) AddUtxos(
	ctx context.Context, utxos []*domain.Utxo,
) (int, error) {
	conn, err := u.pgxPool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	utxosInfo := make([]domain.UtxoInfo, 0, len(utxos))
	for _, v := range utxos {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return 0, err
		}

		done, err := insertUtxo(ctx, u.querier.WithTx(tx), v)
		if err != nil || !done {
			// nolint
			tx.Rollback(ctx)
			if err != nil {
				return 0, err
			}
			continue
		}

		if err := tx.Commit(ctx); err != nil {
			return 0, err
		}

		utxosInfo = append(utxosInfo, v.Info())
	}

	if len(utxosInfo) > 0 {
		go u.publishEvent(domain.UtxoEvent{
			EventType: domain.UtxoAdded,
			Utxos:     utxosInfo,
		})
	}

	return len(utxosInfo), nil
}

func (u *utxoRepositoryPg) GetUtxosByKey(
	ctx context.Context, utxoKeys []domain.UtxoKey,
) ([]*domain.Utxo, error) {
	rows := make([]queries.Utxo, 0, len(utxoKeys))
	for _, key := range utxoKeys {
		row, err := u.querier.GetUtxoForKey(ctx, queries.GetUtxoForKeyParams{
			TxID: key.TxID,
			Vout: int32(key.VOut),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		rows = append(rows, row)
	}

	return convertToUtxos(ctx, u.querier, rows)
}

func (u *utxoRepositoryPg) GetAllUtxos(ctx context.Context) []*domain.Utxo {
	rows, err := u.querier.GetAllUtxos(ctx)
	if err != nil {
		log.Debugf("utxo repository: failed to get utxos: %s", err)
		return nil
	}

	utxos, err := convertToUtxos(ctx, u.querier, rows)
	if err != nil {
		log.Debugf("utxo repository: failed to get utxos: %s", err)
		return nil
	}
	return utxos
}

func (u *utxoRepositoryPg) GetSpendableUtxosForAccount(
	ctx context.Context, account string,
) ([]*domain.Utxo, error) {
	return u.getUtxosForAccount(ctx, account, func(v *domain.Utxo) bool {
		return v.IsSpendable()
	})
}

func (u *utxoRepositoryPg) GetLockedUtxosForAccount(
	ctx context.Context, account string,
) ([]*domain.Utxo, error) {
	return u.getUtxosForAccount(ctx, account, func(v *domain.Utxo) bool {
		return !v.IsSpent() && v.IsLocked()
	})
}

func (u *utxoRepositoryPg) GetBalanceForAccount(
	ctx context.Context, account string,
) (*domain.AccountBalance, error) {
	utxos, err := u.getUtxosForAccount(ctx, account, func(v *domain.Utxo) bool {
		return !v.IsSpent()
	})
	if err != nil {
		return nil, err
	}

	balance := &domain.AccountBalance{
		Spendable: domain.Balance{Assets: domain.Assets{}},
		Locked:    domain.Balance{Assets: domain.Assets{}},
	}
	for _, v := range utxos {
		if v.IsLocked() {
			balance.Locked = balance.Locked.Add(v.Balance)
			continue
		}
		balance.Spendable = balance.Spendable.Add(v.Balance)
	}
	return balance, nil
}

func (u *utxoRepositoryPg) SpendUtxos(
	ctx context.Context, utxoKeys []domain.UtxoKey, status domain.UtxoStatus,
) (int, error) {
	return u.updateUtxos(
		ctx, domain.UtxoSpent, utxoKeys,
		func(q *queries.Queries, id int32, v *domain.Utxo) (bool, error) {
			if v.IsSpent() {
				return false, nil
			}
			if err := v.Spend(status); err != nil {
				return false, err
			}
			return true, q.UpdateUtxoSpentStatus(ctx, queries.UpdateUtxoSpentStatusParams{
				SpentTxID:        status.Txid,
				SpentBlockHeight: int64(status.BlockHeight),
				SpentBlockTime:   status.BlockTime,
				SpentBlockHash:   status.BlockHash,
				ID:               id,
			})
		},
	)
}

func (u *utxoRepositoryPg) LockUtxos(
	ctx context.Context,
	utxoKeys []domain.UtxoKey, timestamp, expiryTimestamp int64,
) (int, error) {
	return u.updateUtxos(
		ctx, domain.UtxoLocked, utxoKeys,
		func(q *queries.Queries, id int32, v *domain.Utxo) (bool, error) {
			if err := v.Lock(timestamp, expiryTimestamp); err != nil {
				return false, nil
			}
			return true, q.UpdateUtxoLock(ctx, queries.UpdateUtxoLockParams{
				LockTimestamp:       timestamp,
				LockExpiryTimestamp: expiryTimestamp,
				ID:                  id,
			})
		},
	)
}

func (u *utxoRepositoryPg) UnlockUtxos(
	ctx context.Context, utxoKeys []domain.UtxoKey,
) (int, error) {
	return u.updateUtxos(
		ctx, domain.UtxoUnlocked, utxoKeys,
		func(q *queries.Queries, id int32, v *domain.Utxo) (bool, error) {
			if !v.IsLocked() {
				return false, nil
			}
			v.Unlock()
			return true, q.UpdateUtxoLock(ctx, queries.UpdateUtxoLockParams{
				ID: id,
			})
		},
	)
}

func (u *utxoRepositoryPg) DeleteUtxosForAccount(
	ctx context.Context, accountName string,
) error {
	return u.querier.DeleteUtxosForAccountName(ctx, accountName)
}

func (u *utxoRepositoryPg) GetEventChannel() chan domain.UtxoEvent {
	return u.externalChEvents
}

func (u *utxoRepositoryPg) getUtxosForAccount(
	ctx context.Context, account string, filter func(v *domain.Utxo) bool,
) ([]*domain.Utxo, error) {
	rows, err := u.querier.GetUtxosForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	utxos, err := convertToUtxos(ctx, u.querier, rows)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Utxo, 0, len(utxos))
	for _, v := range utxos {
		if filter(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// updateUtxos runs the given update for every utxo found by key in a single
// db transaction, and publishes an event of the given type for those that
// were actually updated.
func (u *utxoRepositoryPg) updateUtxos(
	ctx context.Context, eventType domain.UtxoEventType,
	utxoKeys []domain.UtxoKey,
	update func(q *queries.Queries, id int32, v *domain.Utxo) (bool, error),
) (int, error) {
	conn, err := u.pgxPool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return -1, err
	}
	// nolint
	defer tx.Rollback(ctx)

	querierWithTx := u.querier.WithTx(tx)

	utxosInfo := make([]domain.UtxoInfo, 0, len(utxoKeys))
	for _, key := range utxoKeys {
		row, err := querierWithTx.GetUtxoForKey(ctx, queries.GetUtxoForKeyParams{
			TxID: key.TxID,
			Vout: int32(key.VOut),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return -1, err
		}

		utxos, err := convertToUtxos(ctx, querierWithTx, []queries.Utxo{row})
		if err != nil {
			return -1, err
		}

		utxo := utxos[0]
		done, err := update(querierWithTx, row.ID, utxo)
		if err != nil {
			return -1, err
		}
		if done {
			utxosInfo = append(utxosInfo, utxo.Info())
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return -1, err
	}

	if len(utxosInfo) > 0 {
		go u.publishEvent(domain.UtxoEvent{
			EventType: eventType,
			Utxos:     utxosInfo,
		})
	}

	return len(utxosInfo), nil
}

func (u *utxoRepositoryPg) publishEvent(event domain.UtxoEvent) {
	u.chLock.Lock()
	defer u.chLock.Unlock()

	u.chEvents <- event
	// send over channel without blocking in case nobody is listening.
	select {
	case u.externalChEvents <- event:
	default:
	}
}

func (u *utxoRepositoryPg) reset() {
	if err := u.querier.DeleteAllUtxos(context.Background()); err != nil {
		log.Debugf("utxo repository: failed to reset utxos: %s", err)
	}
}

func (u *utxoRepositoryPg) close() {
	close(u.chEvents)
	close(u.externalChEvents)
}

func insertUtxo(
	ctx context.Context, q *queries.Queries, v *domain.Utxo,
) (bool, error) {
	row, err := q.InsertUtxo(ctx, queries.InsertUtxoParams{
		TxID:                v.TxID,
		Vout:                int32(v.VOut),
		AccountName:         v.Account,
		Lovelace:            int64(v.Balance.Lovelace),
		OutputAddress:       v.OutputAddress,
		DatumOption:         v.DatumOption,
		ScriptReference:     v.ScriptReference,
		LockTimestamp:       v.LockTimestamp,
		LockExpiryTimestamp: v.LockExpiryTimestamp,
	})
	if err != nil {
		if pqErr, ok := err.(*pgconn.PgError); ok && pqErr.Code == uniqueViolation {
			return false, nil
		}
		return false, err
	}

	for i, asset := range v.Balance.Assets {
		if err := q.InsertUtxoAsset(ctx, queries.InsertUtxoAssetParams{
			FkUtxoID:  row.ID,
			Position:  int32(i),
			PolicyID:  asset.PolicyID,
			AssetName: asset.Name,
			Quantity:  decimal.NewFromBigInt(new(big.Int).SetUint64(asset.Quantity), 0).String(),
		}); err != nil {
			return false, err
		}
	}

	if v.IsSpent() {
		if err := q.UpdateUtxoSpentStatus(ctx, queries.UpdateUtxoSpentStatusParams{
			SpentTxID:        v.SpentStatus.Txid,
			SpentBlockHeight: int64(v.SpentStatus.BlockHeight),
			SpentBlockTime:   v.SpentStatus.BlockTime,
			SpentBlockHash:   v.SpentStatus.BlockHash,
			ID:               row.ID,
		}); err != nil {
			return false, err
		}
	}

	return true, nil
}

func convertToUtxos(
	ctx context.Context, q *queries.Queries, rows []queries.Utxo,
) ([]*domain.Utxo, error) {
	if len(rows) <= 0 {
		return nil, nil
	}

	ids := make([]int32, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	assetRows, err := q.GetAssetsForUtxos(ctx, ids)
	if err != nil {
		return nil, err
	}

	assetsByUtxo := make(map[int32]domain.Assets)
	for _, a := range assetRows {
		quantity, err := decimal.NewFromString(a.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid asset quantity %s: %w", a.Quantity, err)
		}
		assetsByUtxo[a.FkUtxoID] = append(assetsByUtxo[a.FkUtxoID], domain.Asset{
			PolicyID: a.PolicyID,
			Name:     a.AssetName,
			Quantity: quantity.BigInt().Uint64(),
		})
	}

	utxos := make([]*domain.Utxo, 0, len(rows))
	for _, row := range rows {
		assets := assetsByUtxo[row.ID]
		if assets == nil {
			assets = domain.Assets{}
		}
		utxo := &domain.Utxo{
			UtxoKey: domain.UtxoKey{
				TxID: row.TxID,
				VOut: uint32(row.Vout),
			},
			Account: row.AccountName,
			Balance: domain.Balance{
				Lovelace: uint64(row.Lovelace),
				Assets:   assets,
			},
			OutputAddress:       row.OutputAddress,
			DatumOption:         row.DatumOption,
			ScriptReference:     row.ScriptReference,
			LockTimestamp:       row.LockTimestamp,
			LockExpiryTimestamp: row.LockExpiryTimestamp,
		}
		if row.SpentTxID != "" {
			utxo.SpentStatus = domain.UtxoStatus{
				Txid:        row.SpentTxID,
				BlockHeight: uint64(row.SpentBlockHeight),
				BlockTime:   row.SpentBlockTime,
				BlockHash:   row.SpentBlockHash,
			}
		}
		utxos = append(utxos, utxo)
	}
	return utxos, nil
}
