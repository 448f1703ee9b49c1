package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	appconfig "github.com/vulpemventures/reef/internal/app-config"
	"github.com/vulpemventures/reef/internal/config"
	postgresdb "github.com/vulpemventures/reef/internal/infrastructure/storage/db/postgres"
	"github.com/vulpemventures/reef/internal/interfaces"
	grpc_interface "github.com/vulpemventures/reef/internal/interfaces/grpc"
	"github.com/vulpemventures/reef/pkg/profiler"
)

var (
	// Build info.
	version string
	commit  string
	date    string

	// Config from env vars.
	dbType             = config.GetString(config.DatabaseTypeKey)
	logLevel           = config.GetInt(config.LogLevelKey)
	datadir            = config.GetDatadir()
	port               = config.GetInt(config.PortKey)
	profilerPort       = config.GetInt(config.ProfilerPortKey)
	noTLS              = config.GetBool(config.NoTLSKey)
	noProfiler         = config.GetBool(config.NoProfilerKey)
	dbDir              = filepath.Join(datadir, config.DbLocation)
	tlsDir             = filepath.Join(datadir, config.TLSLocation)
	profilerDir        = filepath.Join(datadir, config.ProfilerLocation)
	tlsExtraIPs        = config.GetStringSlice(config.TLSExtraIPKey)
	tlsExtraDomains    = config.GetStringSlice(config.TLSExtraDomainKey)
	statsInterval      = time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
	utxoExpiryDuration = time.Duration(config.GetInt(config.UtxoExpiryDurationKey))
	coinsPerUTxOByte   = config.GetUint64(config.CoinsPerUTxOByteKey)
	keyDeposit         = config.GetUint64(config.KeyDepositKey)
	dbUser             = config.GetString(config.DbUserKey)
	dbPass             = config.GetString(config.DbPassKey)
	dbHost             = config.GetString(config.DbHostKey)
	dbPort             = config.GetInt(config.DbPortKey)
	dbName             = config.GetString(config.DbNameKey)
	dbMigrationPath    = config.GetString(config.DbMigrationPath)
)

func main() {
	log.SetLevel(log.Level(logLevel))

	if profilerEnabled := !noProfiler; profilerEnabled {
		profilerSvc, err := profiler.NewService(profiler.ServiceOpts{
			Port:          profilerPort,
			StatsInterval: statsInterval,
			Datadir:       profilerDir,
		})
		if err != nil {
			log.WithError(err).Fatal("profiler: error while starting")
		}

		profilerSvc.Start()
		defer func() {
			profilerSvc.Stop()
		}()
	}

	var repoManagerConfig interface{} = dbDir
	if dbType == "postgres" {
		repoManagerConfig = postgresdb.DbConfig{
			DbUser:             dbUser,
			DbPassword:         dbPass,
			DbHost:             dbHost,
			DbPort:             dbPort,
			DbName:             dbName,
			MigrationSourceURL: dbMigrationPath,
		}
	}

	serviceCfg := grpc_interface.ServiceConfig{
		Port:         port,
		NoTLS:        noTLS,
		TLSLocation:  tlsDir,
		ExtraIPs:     tlsExtraIPs,
		ExtraDomains: tlsExtraDomains,
	}
	appCfg := &appconfig.AppConfig{
		Version:            version,
		Commit:             commit,
		Date:               date,
		UtxoExpiryDuration: utxoExpiryDuration * time.Second,
		CoinsPerUTxOByte:   coinsPerUTxOByte,
		KeyDeposit:         keyDeposit,
		RepoManagerType:    dbType,
		RepoManagerConfig:  repoManagerConfig,
	}

	serviceManager, err := interfaces.NewGrpcServiceManager(serviceCfg, appCfg)
	if err != nil {
		log.WithError(err).Fatal("service: error while initializing")
	}

	info := appCfg.BuildInfo()
	log.WithFields(log.Fields{
		"version": info.Version,
		"commit":  info.Commit,
		"date":    info.Date,
		"db":      dbType,
	}).Info("starting reefd")

	if err := serviceManager.Service.Start(); err != nil {
		log.WithError(err).Fatal("service: error while starting")
	}
	defer func() {
		serviceManager.Service.Stop()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
}
