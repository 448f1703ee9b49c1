package appconfig

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/reef/internal/config"
	"github.com/vulpemventures/reef/internal/core/application"
	"github.com/vulpemventures/reef/internal/core/domain"
	"github.com/vulpemventures/reef/internal/core/ports"
	protocolparams "github.com/vulpemventures/reef/internal/infrastructure/protocol-params"
	dbbadger "github.com/vulpemventures/reef/internal/infrastructure/storage/db/badger"
	"github.com/vulpemventures/reef/internal/infrastructure/storage/db/inmemory"
	postgresdb "github.com/vulpemventures/reef/internal/infrastructure/storage/db/postgres"
)

// AppConfig is the struct holding all configuration options for
// every application service (utxo, selection and notification).
// This data structure acts also as a factory of the mentioned application
// services and the portable services used by them.
// Public config args:
//   - UtxoExpiryDuration - (required) The duration for the selection service to wait until unlocking one or more previously selected utxos.
//   - CoinsPerUTxOByte - (required) The ledger cost of every byte of an output.
//   - KeyDeposit - (optional) The ledger deposit for registering a stake key.
//   - RepoManagerType - (required) One of the supported repository manager types.
//   - RepoManagerConfig - (optional) Custom config args for the repository manager based on its type.
type AppConfig struct {
	Version string
	Commit  string
	Date    string

	UtxoExpiryDuration time.Duration
	CoinsPerUTxOByte   uint64
	KeyDeposit         uint64

	RepoManagerType   string
	RepoManagerConfig interface{}

	rm           ports.RepoManager
	params       domain.ProtocolParams
	utxoSvc      *application.UtxoService
	selectionSvc *application.SelectionService
	notifySvc    *application.NotificationService
}

func (c *AppConfig) Validate() error {
	if c.UtxoExpiryDuration == 0 {
		return fmt.Errorf("missing utxo expiry duration")
	}
	if c.CoinsPerUTxOByte == 0 {
		return fmt.Errorf("missing coins per utxo byte")
	}
	if len(c.RepoManagerType) == 0 {
		return fmt.Errorf("missing repo manager type")
	}
	if _, ok := config.SupportedDbs[c.RepoManagerType]; !ok {
		return fmt.Errorf(
			"repo manager type not supported, must be one of: %s",
			config.SupportedDbs,
		)
	}
	if _, err := c.protocolParams(); err != nil {
		return err
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}

	return nil
}

func (c *AppConfig) RepoManager() ports.RepoManager {
	return c.rm
}

func (c *AppConfig) ProtocolParams() domain.ProtocolParams {
	return c.params
}

func (c *AppConfig) UtxoService() *application.UtxoService {
	return c.utxoService()
}

func (c *AppConfig) SelectionService() *application.SelectionService {
	return c.selectionService()
}

func (c *AppConfig) NotificationService() *application.NotificationService {
	return c.notificationService()
}

func (c *AppConfig) BuildInfo() application.BuildInfo {
	version := "dev"
	if c.Version != "" {
		version = c.Version
	}
	commit := "none"
	if c.Commit != "" {
		commit = c.Commit
	}
	date := "unknown"
	if c.Date != "" {
		date = c.Date
	}
	return application.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

func (c *AppConfig) repoManager() (ports.RepoManager, error) {
	if c.rm != nil {
		return c.rm, nil
	}

	switch c.RepoManagerType {
	case "inmemory":
		c.rm = inmemory.NewRepoManager()
		return c.rm, nil
	case "badger":
		if c.RepoManagerConfig == nil {
			return nil, fmt.Errorf("missing repo manager config args")
		}
		datadir, ok := c.RepoManagerConfig.(string)
		if !ok {
			return nil, fmt.Errorf("invalid repo manager config type, must be string")
		}
		rm, err := dbbadger.NewRepoManager(datadir, log.New())
		if err != nil {
			return nil, err
		}
		c.rm = rm
		return c.rm, nil
	case "postgres":
		dbConfig, ok := c.RepoManagerConfig.(postgresdb.DbConfig)
		if !ok {
			return nil, fmt.Errorf("invalid repo manager config type, must be postgresdb.DbConfig")
		}

		rm, err := postgresdb.NewRepoManager(dbConfig)
		if err != nil {
			return nil, err
		}

		c.rm = rm
		return c.rm, nil
	default:
		return nil, fmt.Errorf("unknown repo manager type")
	}
}

func (c *AppConfig) protocolParams() (domain.ProtocolParams, error) {
	if c.params != nil {
		return c.params, nil
	}

	params, err := protocolparams.NewProtocolParams(
		c.CoinsPerUTxOByte, c.KeyDeposit,
	)
	if err != nil {
		return nil, err
	}
	c.params = params
	return c.params, nil
}

func (c *AppConfig) utxoService() *application.UtxoService {
	if c.utxoSvc != nil {
		return c.utxoSvc
	}

	rm, _ := c.repoManager()
	c.utxoSvc = application.NewUtxoService(rm)
	return c.utxoSvc
}

func (c *AppConfig) selectionService() *application.SelectionService {
	if c.selectionSvc != nil {
		return c.selectionSvc
	}

	rm, _ := c.repoManager()
	params, _ := c.protocolParams()
	c.selectionSvc = application.NewSelectionService(
		rm, params, c.UtxoExpiryDuration,
	)
	return c.selectionSvc
}

func (c *AppConfig) notificationService() *application.NotificationService {
	if c.notifySvc != nil {
		return c.notifySvc
	}

	rm, _ := c.repoManager()
	c.notifySvc = application.NewNotificationService(rm)
	return c.notifySvc
}
