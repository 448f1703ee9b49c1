package dbbadger

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
	"github.com/vulpemventures/reef/internal/core/domain"
)

// utxoRecord is the stored version of an utxo. Sequence keeps track of the
// insertion order since records are sorted by key hash in the db.
type utxoRecord struct {
	domain.Utxo
	Sequence uint64
}

type utxoRepository struct {
	store            *badgerhold.Store
	chEvents         chan domain.UtxoEvent
	externalChEvents chan domain.UtxoEvent
	chLock           *sync.Mutex
	lock             *sync.Mutex
	sequence         *uint64

	log func(format string, a ...interface{})
}

func NewUtxoRepository(store *badgerhold.Store) domain.UtxoRepository {
	return newUtxoRepository(store)
}

func newUtxoRepository(store *badgerhold.Store) *utxoRepository {
	chEvents := make(chan domain.UtxoEvent)
	externalChEvents := make(chan domain.UtxoEvent)
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("utxo repository: %s", format)
		log.Debugf(format, a...)
	}
	sequence := uint64(time.Now().UnixNano())
	return &utxoRepository{
		store, chEvents, externalChEvents, &sync.Mutex{}, &sync.Mutex{},
		&sequence, logFn,
	}
}

func (r *utxoRepository) AddUtxos(
	_ context.Context, utxos []*domain.Utxo,
) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	count := 0
	utxosInfo := make([]domain.UtxoInfo, 0)
	for _, u := range utxos {
		done, err := r.insertUtxo(u)
		if err != nil {
			return -1, err
		}
		if done {
			count++
			utxosInfo = append(utxosInfo, u.Info())
		}
	}

	if count > 0 {
		r.log("added %d utxo(s)", count)
		go r.publishEvent(domain.UtxoEvent{
			EventType: domain.UtxoAdded,
			Utxos:     utxosInfo,
		})
	}

	return count, nil
}

func (r *utxoRepository) GetUtxosByKey(
	_ context.Context, utxoKeys []domain.UtxoKey,
) ([]*domain.Utxo, error) {
	utxos := make([]*domain.Utxo, 0, len(utxoKeys))
	for _, key := range utxoKeys {
		utxo, err := r.getUtxo(key)
		if err != nil {
			return nil, err
		}
		if utxo != nil {
			utxos = append(utxos, utxo)
		}
	}

	return utxos, nil
}

func (r *utxoRepository) GetAllUtxos(_ context.Context) []*domain.Utxo {
	utxos, err := r.findUtxos(nil)
	if err != nil {
		r.log("failed to get utxos: %s", err)
		return nil
	}
	return utxos
}

func (r *utxoRepository) GetSpendableUtxosForAccount(
	_ context.Context, account string,
) ([]*domain.Utxo, error) {
	query := badgerhold.Where("SpentStatus").Eq(domain.UtxoStatus{}).
		And("LockTimestamp").Eq(int64(0)).And("Account").Eq(account)

	return r.findUtxos(query)
}

func (r *utxoRepository) GetLockedUtxosForAccount(
	_ context.Context, account string,
) ([]*domain.Utxo, error) {
	query := badgerhold.Where("SpentStatus").Eq(domain.UtxoStatus{}).
		And("LockTimestamp").Gt(int64(0)).And("Account").Eq(account)

	return r.findUtxos(query)
}

func (r *utxoRepository) GetBalanceForAccount(
	_ context.Context, account string,
) (*domain.AccountBalance, error) {
	query := badgerhold.Where("SpentStatus").Eq(domain.UtxoStatus{}).
		And("Account").Eq(account)
	utxos, err := r.findUtxos(query)
	if err != nil {
		return nil, err
	}

	balance := &domain.AccountBalance{
		Spendable: domain.Balance{Assets: domain.Assets{}},
		Locked:    domain.Balance{Assets: domain.Assets{}},
	}
	for _, u := range utxos {
		if u.IsLocked() {
			balance.Locked = balance.Locked.Add(u.Balance)
			continue
		}
		balance.Spendable = balance.Spendable.Add(u.Balance)
	}
	return balance, nil
}

func (r *utxoRepository) SpendUtxos(
	_ context.Context, utxoKeys []domain.UtxoKey, status domain.UtxoStatus,
) (int, error) {
	return r.updateUtxos(domain.UtxoSpent, utxoKeys, func(u *domain.Utxo) (bool, error) {
		if u.IsSpent() {
			return false, nil
		}
		if err := u.Spend(status); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (r *utxoRepository) LockUtxos(
	_ context.Context, utxoKeys []domain.UtxoKey, timestamp, expiryTimestamp int64,
) (int, error) {
	return r.updateUtxos(domain.UtxoLocked, utxoKeys, func(u *domain.Utxo) (bool, error) {
		if err := u.Lock(timestamp, expiryTimestamp); err != nil {
			return false, nil
		}
		return true, nil
	})
}

func (r *utxoRepository) UnlockUtxos(
	_ context.Context, utxoKeys []domain.UtxoKey,
) (int, error) {
	return r.updateUtxos(domain.UtxoUnlocked, utxoKeys, func(u *domain.Utxo) (bool, error) {
		if !u.IsLocked() {
			return false, nil
		}
		u.Unlock()
		return true, nil
	})
}

func (r *utxoRepository) DeleteUtxosForAccount(
	_ context.Context, account string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	query := badgerhold.Where("Account").Eq(account)
	return r.store.DeleteMatching(utxoRecord{}, query)
}

func (r *utxoRepository) GetEventChannel() chan domain.UtxoEvent {
	return r.externalChEvents
}

// updateUtxos applies the given update to every utxo found by key within a
// single transaction, and publishes an event of the given type for those
// actually updated.
func (r *utxoRepository) updateUtxos(
	eventType domain.UtxoEventType, utxoKeys []domain.UtxoKey,
	update func(u *domain.Utxo) (bool, error),
) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	utxosInfo := make([]domain.UtxoInfo, 0, len(utxoKeys))
	err := r.store.Badger().Update(func(txn *badger.Txn) error {
		for _, key := range utxoKeys {
			var record utxoRecord
			if err := r.store.TxGet(txn, key.Hash(), &record); err != nil {
				if err == badgerhold.ErrNotFound {
					continue
				}
				return err
			}

			done, err := update(&record.Utxo)
			if err != nil {
				return err
			}
			if !done {
				continue
			}
			if err := r.store.TxUpdate(txn, key.Hash(), record); err != nil {
				return err
			}
			utxosInfo = append(utxosInfo, record.Info())
		}
		return nil
	})
	if err != nil {
		return -1, err
	}

	count := len(utxosInfo)
	if count > 0 {
		r.log("%s %d utxo(s)", eventType, count)
		go r.publishEvent(domain.UtxoEvent{
			EventType: eventType,
			Utxos:     utxosInfo,
		})
	}
	return count, nil
}

func (r *utxoRepository) getUtxo(key domain.UtxoKey) (*domain.Utxo, error) {
	var record utxoRecord
	if err := r.store.Get(key.Hash(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record.Utxo, nil
}

func (r *utxoRepository) findUtxos(query *badgerhold.Query) ([]*domain.Utxo, error) {
	if query == nil {
		query = &badgerhold.Query{}
	}

	var records []utxoRecord
	if err := r.store.Find(&records, query.SortBy("Sequence")); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	utxos := make([]*domain.Utxo, 0, len(records))
	for i := range records {
		utxos = append(utxos, &records[i].Utxo)
	}
	return utxos, nil
}

func (r *utxoRepository) insertUtxo(utxo *domain.Utxo) (bool, error) {
	record := utxoRecord{
		Utxo:     *utxo,
		Sequence: atomic.AddUint64(r.sequence, 1),
	}
	if err := r.store.Insert(utxo.Key().Hash(), record); err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *utxoRepository) publishEvent(event domain.UtxoEvent) {
	r.chLock.Lock()
	defer r.chLock.Unlock()

	r.chEvents <- event
	// send over channel without blocking in case nobody is listening.
	select {
	case r.externalChEvents <- event:
	default:
	}
}

func (r *utxoRepository) reset() {
	if err := r.store.DeleteMatching(utxoRecord{}, nil); err != nil {
		r.log("failed to reset utxos: %s", err)
	}
}

func (r *utxoRepository) close() {
	r.store.Close()
	close(r.chEvents)
	close(r.externalChEvents)
}
