package application

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

// SelectionService runs coin selections over the spendable utxos of an
// account and locks the selected ones so that concurrent selections never
// return the same coins:
//   - Select coins for a set of outputs, optional mint and certificates,
//     locking the selected utxos until the returned expiration date.
//   - Estimate the change of the same kind of request without locking
//     anything.
//
// Selections for the same account are serialized.
//
// The service registers 1 handler for the following utxo event:
//   - domain.UtxoLocked - whenever one or more utxos are locked, the service
//     spawns an unlocker that releases them when their lock expires, unless
//     they have been spent or unlocked meanwhile.
//
// At startup, it unlocks any expired lock and spawns unlockers for the
// others.
type SelectionService struct {
	repoManager        ports.RepoManager
	params             domain.ProtocolParams
	utxoExpiryDuration time.Duration

	accountLocks *accountLocks

	log func(format string, a ...interface{})
}

func NewSelectionService(
	repoManager ports.RepoManager, params domain.ProtocolParams,
	utxoExpiryDuration time.Duration,
) *SelectionService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("selection service: %s", format)
		log.Debugf(format, a...)
	}
	svc := &SelectionService{
		repoManager, params, utxoExpiryDuration, newAccountLocks(), logFn,
	}
	svc.registerHandlerForUtxoEvents()
	go svc.scheduleUtxoUnlocker()

	return svc
}

// SelectCoins selects the utxos of the given account covering the request
// and locks them. The lock lasts for the configured expiry duration.
func (ss *SelectionService) SelectCoins(
	ctx context.Context, args SelectCoinsArgs,
) (*SelectionInfo, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	unlock := ss.accountLocks.lock(args.Account)
	defer unlock()

	cs, err := ss.selectCoins(ctx, args)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lockExpiration := now.Add(ss.utxoExpiryDuration)
	keys := Utxos(cs.SelectedUtxos).Keys()
	count, err := ss.repoManager.UtxoRepository().LockUtxos(
		ctx, keys, now.Unix(), lockExpiration.Unix(),
	)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		utxosLockedTotal.Add(float64(count))
		ss.log(
			"locked %d utxo(s) for account %s (%s)",
			count, args.Account, UtxoKeys(keys),
		)
	}

	return &SelectionInfo{cs, lockExpiration.Unix()}, nil
}

// EstimateChange runs a coin selection like SelectCoins without locking the
// selected utxos.
func (ss *SelectionService) EstimateChange(
	ctx context.Context, args SelectCoinsArgs,
) (*domain.CoinSelection, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	return ss.selectCoins(ctx, args)
}

func (ss *SelectionService) selectCoins(
	ctx context.Context, args SelectCoinsArgs,
) (cs *domain.CoinSelection, err error) {
	defer func() {
		observeCoinSelection(
			args.CoinSelectionStrategy, args.ChangeCreationStrategy, cs, err,
		)
	}()

	utxoRepo := ss.repoManager.UtxoRepository()
	utxos, err := utxoRepo.GetSpendableUtxosForAccount(ctx, args.Account)
	if err != nil {
		return nil, err
	}

	requiredUtxos, err := ss.getRequiredUtxos(ctx, args.Account, args.RequiredUtxos)
	if err != nil {
		return nil, err
	}

	coinSelector := coinSelectorByType[args.CoinSelectionStrategy]()
	changeCreator := changeCreatorByType[args.ChangeCreationStrategy](ss.params)
	engine := NewCoinSelectionService(coinSelector, changeCreator, ss.params)

	return engine.GetCoinSelection(CoinSelectionRequest{
		Outputs:       args.Outputs,
		Utxos:         utxos,
		ChangeAddress: args.ChangeAddress,
		Mint:          args.Mint,
		Certificates:  args.Certificates,
		RequiredUtxos: requiredUtxos,
		Limit:         args.Limit,
		FeeBuffer:     args.FeeBuffer,
	})
}

func (ss *SelectionService) getRequiredUtxos(
	ctx context.Context, account string, keys []domain.UtxoKey,
) ([]*domain.Utxo, error) {
	if len(keys) <= 0 {
		return nil, nil
	}

	keys = normalizeKeys(keys)
	utxos, err := ss.repoManager.UtxoRepository().GetUtxosByKey(ctx, keys)
	if err != nil {
		return nil, err
	}

	utxosByKey := make(map[string]*domain.Utxo)
	for _, u := range utxos {
		utxosByKey[u.Key().Hash()] = u
	}

	requiredUtxos := make([]*domain.Utxo, 0, len(keys))
	for _, key := range keys {
		u, ok := utxosByKey[key.Hash()]
		if !ok || u.Account != account {
			return nil, fmt.Errorf("%w: %s", ErrRequiredUtxoNotFound, key)
		}
		if !u.IsSpendable() {
			return nil, fmt.Errorf("%w: %s", ErrRequiredUtxoNotSpendable, key)
		}
		requiredUtxos = append(requiredUtxos, u)
	}
	return requiredUtxos, nil
}

func (ss *SelectionService) registerHandlerForUtxoEvents() {
	ss.repoManager.RegisterHandlerForUtxoEvent(
		domain.UtxoLocked, func(event domain.UtxoEvent) {
			keys := UtxosInfo(event.Utxos).Keys()
			ss.spawnUtxoUnlocker(keys)
		},
	)
}

// scheduleUtxoUnlocker unlocks every expired lock found in the repository
// and spawns an unlocker for the others.
func (ss *SelectionService) scheduleUtxoUnlocker() {
	ctx := context.Background()
	utxoRepo := ss.repoManager.UtxoRepository()

	utxosToUnlock := make([]domain.UtxoKey, 0)
	utxosToSpawnUnlocker := make([]domain.UtxoKey, 0)
	for _, u := range utxoRepo.GetAllUtxos(ctx) {
		if u.IsSpent() || !u.IsLocked() {
			continue
		}
		if u.CanUnlock() {
			utxosToUnlock = append(utxosToUnlock, u.Key())
		} else {
			utxosToSpawnUnlocker = append(utxosToSpawnUnlocker, u.Key())
		}
	}

	if len(utxosToUnlock) > 0 {
		count, err := utxoRepo.UnlockUtxos(ctx, utxosToUnlock)
		if err != nil {
			utxosToSpawnUnlocker = append(utxosToSpawnUnlocker, utxosToUnlock...)
		}
		if count > 0 {
			utxosUnlockedTotal.Add(float64(count))
			ss.log("unlocked %d expired utxo(s) (%s)", count, UtxoKeys(utxosToUnlock))
		}
	}
	if len(utxosToSpawnUnlocker) > 0 {
		ss.spawnUtxoUnlocker(utxosToSpawnUnlocker)
	}
}

// spawnUtxoUnlocker groups the locked utxos identified by the given keys by
// their lock expiration, and schedules the unlocking of each group once its
// expiration comes.
func (ss *SelectionService) spawnUtxoUnlocker(utxoKeys []domain.UtxoKey) {
	ctx := context.Background()
	utxos, _ := ss.repoManager.UtxoRepository().GetUtxosByKey(ctx, utxoKeys)

	utxosByExpiry := make(map[int64][]domain.UtxoKey)
	for _, u := range utxos {
		if !u.IsLocked() {
			continue
		}
		utxosByExpiry[u.LockExpiryTimestamp] = append(
			utxosByExpiry[u.LockExpiryTimestamp], u.Key(),
		)
	}

	for expiry, keys := range utxosByExpiry {
		unlockTime := time.Until(time.Unix(expiry, 0))
		if unlockTime < 0 {
			unlockTime = 0
		}
		ss.log("spawning unlocker for utxo(s) %s", UtxoKeys(keys))
		ss.log(
			"utxo(s) will be eventually unlocked in ~%.0f seconds",
			math.Round(unlockTime.Seconds()/10)*10,
		)

		keys := keys
		time.AfterFunc(unlockTime, func() {
			ss.unlockExpiredUtxos(keys)
		})
	}
}

// unlockExpiredUtxos unlocks those of the given utxos that are still locked
// and whose lock expired. In case of errors, it retries after a short delay.
func (ss *SelectionService) unlockExpiredUtxos(keys []domain.UtxoKey) {
	ctx := context.Background()
	utxoRepo := ss.repoManager.UtxoRepository()

	utxos, err := utxoRepo.GetUtxosByKey(ctx, keys)
	if err != nil {
		time.AfterFunc(5*time.Second, func() { ss.unlockExpiredUtxos(keys) })
		return
	}

	utxosToUnlock := make([]domain.UtxoKey, 0, len(utxos))
	spentUtxos := make([]domain.UtxoKey, 0, len(utxos))
	for _, u := range utxos {
		if u.IsSpent() {
			spentUtxos = append(spentUtxos, u.Key())
			continue
		}
		if u.IsLocked() && u.CanUnlock() {
			utxosToUnlock = append(utxosToUnlock, u.Key())
		}
	}

	if len(spentUtxos) > 0 {
		ss.log(
			"utxo(s) %s have been spent, skipping unlocking", UtxoKeys(spentUtxos),
		)
	}
	if len(utxosToUnlock) <= 0 {
		return
	}

	count, err := utxoRepo.UnlockUtxos(ctx, utxosToUnlock)
	if err != nil {
		time.AfterFunc(5*time.Second, func() { ss.unlockExpiredUtxos(keys) })
		return
	}
	if count > 0 {
		utxosUnlockedTotal.Add(float64(count))
		ss.log("unlocked %d utxo(s) %s", count, UtxoKeys(utxosToUnlock))
	}
}

// accountLocks hands out one mutex per account.
type accountLocks struct {
	locks map[string]*sync.Mutex
	mu    *sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{
		locks: make(map[string]*sync.Mutex),
		mu:    &sync.Mutex{},
	}
}

func (l *accountLocks) lock(account string) func() {
	l.mu.Lock()
	m, ok := l.locks[account]
	if !ok {
		m = &sync.Mutex{}
		l.locks[account] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
