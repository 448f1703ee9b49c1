package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
)

// UtxoService manages the utxo set the coin selections are run over:
//   - Add utxos to an account.
//   - List the spendable and locked utxos of an account, or get its balance.
//   - Unlock utxos before their lock expires.
//   - Mark utxos as spent once the transaction spending them is known.
//   - Delete all the utxos of an account.
type UtxoService struct {
	repoManager ports.RepoManager

	log func(format string, a ...interface{})
}

func NewUtxoService(repoManager ports.RepoManager) *UtxoService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("utxo service: %s", format)
		log.Debugf(format, a...)
	}
	return &UtxoService{repoManager, logFn}
}

// AddUtxos adds the given utxos to the account. Utxos already known are
// skipped, the number of those actually added is returned.
func (us *UtxoService) AddUtxos(
	ctx context.Context, account string, utxos []*domain.Utxo,
) (int, error) {
	if account == "" {
		return -1, ErrMissingAccount
	}
	if len(utxos) <= 0 {
		return -1, ErrMissingUtxos
	}
	for _, u := range utxos {
		u.TxID = strings.ToLower(u.TxID)
		if err := validateTxid(u.TxID); err != nil {
			return -1, err
		}
		if u.Balance.Assets == nil {
			u.Balance.Assets = domain.Assets{}
		}
		u.Account = account
	}

	count, err := us.repoManager.UtxoRepository().AddUtxos(ctx, utxos)
	if err != nil {
		return -1, err
	}
	if count > 0 {
		us.log("added %d utxo(s) to account %s", count, account)
	}
	return count, nil
}

func (us *UtxoService) ListUtxos(
	ctx context.Context, account string,
) (*UtxoInfo, error) {
	if account == "" {
		return nil, ErrMissingAccount
	}

	utxoRepo := us.repoManager.UtxoRepository()
	spendable, err := utxoRepo.GetSpendableUtxosForAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	locked, err := utxoRepo.GetLockedUtxosForAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	return &UtxoInfo{spendable, locked}, nil
}

func (us *UtxoService) GetBalance(
	ctx context.Context, account string,
) (*domain.AccountBalance, error) {
	if account == "" {
		return nil, ErrMissingAccount
	}
	return us.repoManager.UtxoRepository().GetBalanceForAccount(ctx, account)
}

// UnlockUtxos releases the given utxos regardless of their lock expiration.
func (us *UtxoService) UnlockUtxos(
	ctx context.Context, keys []domain.UtxoKey,
) (int, error) {
	if len(keys) <= 0 {
		return -1, ErrMissingUtxos
	}
	keys = normalizeKeys(keys)

	count, err := us.repoManager.UtxoRepository().UnlockUtxos(ctx, keys)
	if err != nil {
		return -1, err
	}
	if count > 0 {
		utxosUnlockedTotal.Add(float64(count))
		us.log("unlocked %d utxo(s) (%s)", count, UtxoKeys(keys))
	}
	return count, nil
}

// SpendUtxos marks the given utxos as spent by the transaction in status.
func (us *UtxoService) SpendUtxos(
	ctx context.Context, keys []domain.UtxoKey, status domain.UtxoStatus,
) (int, error) {
	if len(keys) <= 0 {
		return -1, ErrMissingUtxos
	}
	keys = normalizeKeys(keys)
	status.Txid = strings.ToLower(status.Txid)
	if err := validateTxid(status.Txid); err != nil {
		return -1, err
	}

	count, err := us.repoManager.UtxoRepository().SpendUtxos(ctx, keys, status)
	if err != nil {
		return -1, err
	}
	if count > 0 {
		us.log("spent %d utxo(s) in tx %s", count, status.Txid)
	}
	return count, nil
}

func (us *UtxoService) DeleteUtxos(ctx context.Context, account string) error {
	if account == "" {
		return ErrMissingAccount
	}
	return us.repoManager.UtxoRepository().DeleteUtxosForAccount(ctx, account)
}

// normalizeKeys returns a copy of keys with lowercase txids.
func normalizeKeys(keys []domain.UtxoKey) []domain.UtxoKey {
	normalized := make([]domain.UtxoKey, 0, len(keys))
	for _, k := range keys {
		normalized = append(normalized, domain.UtxoKey{
			TxID: strings.ToLower(k.TxID),
			VOut: k.VOut,
		})
	}
	return normalized
}

func validateTxid(txid string) error {
	buf, err := hex.DecodeString(txid)
	if err != nil || len(buf) != 32 {
		return fmt.Errorf("%w: %q", ErrInvalidTxid, txid)
	}
	return nil
}
