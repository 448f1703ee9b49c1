package db_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"os"
	"strconv"

	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
	dbbadger "github.com/vulpemventures/reef/internal/infrastructure/storage/db/badger"
	"github.com/vulpemventures/reef/internal/infrastructure/storage/db/inmemory"
	postgresdb "github.com/vulpemventures/reef/internal/infrastructure/storage/db/postgres"
)

// The postgres repository is tested only if REEF_TEST_DB_HOST is set, the
// other connection params can be customized with the REEF_TEST_DB_* vars.
const (
	pgHostEnv = "REEF_TEST_DB_HOST"
	pgPortEnv = "REEF_TEST_DB_PORT"
	pgUserEnv = "REEF_TEST_DB_USER"
	pgPassEnv = "REEF_TEST_DB_PASS"
	pgNameEnv = "REEF_TEST_DB_NAME"
)

var ctx = context.Background()

func newUtxoRepositories(
	handlerFactory func(repoType string) ports.UtxoEventHandler,
) (map[string]domain.UtxoRepository, error) {
	inmemoryRepoManager := inmemory.NewRepoManager()
	badgerRepoManager, err := dbbadger.NewRepoManager("", nil)
	if err != nil {
		return nil, err
	}

	repoManagers := map[string]ports.RepoManager{
		"inmemory": inmemoryRepoManager,
		"badger":   badgerRepoManager,
	}

	if dbConfig, ok := pgTestConfig(); ok {
		pgRepoManager, err := postgresdb.NewRepoManager(dbConfig)
		if err != nil {
			return nil, err
		}
		pgRepoManager.Reset()
		repoManagers["postgres"] = pgRepoManager
	}

	eventTypes := []domain.UtxoEventType{
		domain.UtxoAdded, domain.UtxoLocked, domain.UtxoUnlocked, domain.UtxoSpent,
	}
	repositories := make(map[string]domain.UtxoRepository)
	for name, repoManager := range repoManagers {
		for _, eventType := range eventTypes {
			repoManager.RegisterHandlerForUtxoEvent(eventType, handlerFactory(name))
		}
		repositories[name] = repoManager.UtxoRepository()
	}
	return repositories, nil
}

func pgTestConfig() (postgresdb.DbConfig, bool) {
	host := os.Getenv(pgHostEnv)
	if host == "" {
		return postgresdb.DbConfig{}, false
	}

	port := 5432
	if p, err := strconv.Atoi(os.Getenv(pgPortEnv)); err == nil {
		port = p
	}
	return postgresdb.DbConfig{
		DbUser:             envOrDefault(pgUserEnv, "root"),
		DbPassword:         envOrDefault(pgPassEnv, "secret"),
		DbHost:             host,
		DbPort:             port,
		DbName:             envOrDefault(pgNameEnv, "reefd-db-test"),
		MigrationSourceURL: "file://../postgres/migration",
	}, true
}

func envOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func randomUtxosForAccount(
	account string,
) ([]*domain.Utxo, []domain.UtxoKey, domain.Balance) {
	num := 5
	utxos := make([]*domain.Utxo, 0, num)
	keys := make([]domain.UtxoKey, 0, num)
	balance := domain.Balance{Assets: domain.Assets{}}
	for i := 0; i < num; i++ {
		key := randomKey()
		value := domain.Balance{
			Lovelace: randomValue(),
			Assets: domain.Assets{
				{PolicyID: policyID, Name: tokenName, Quantity: randomValue()},
			},
		}
		utxos = append(utxos, &domain.Utxo{
			UtxoKey:       key,
			Account:       account,
			Balance:       value,
			OutputAddress: outputAddress,
		})
		keys = append(keys, key)
		balance = balance.Add(value)
	}
	return utxos, keys, balance
}

func randomKey() domain.UtxoKey {
	return domain.UtxoKey{
		TxID: randomHex(32),
		VOut: uint32(randomIntInRange(0, 15)),
	}
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomValue() uint64 {
	return uint64(randomIntInRange(1_000_000, 100_000_000))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	// nolint
	rand.Read(b)
	return b
}

func randomIntInRange(min, max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max-min)))
	return min + int(n.Int64())
}
