package grpc_interface

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	appconfig "github.com/vulpemventures/reef/internal/app-config"
	grpc_handler "github.com/vulpemventures/reef/internal/interfaces/grpc/handler"
	grpc_interceptor "github.com/vulpemventures/reef/internal/interfaces/grpc/interceptor"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var (
	tlsKeyFile  = "key.pem"
	tlsCertFile = "cert.pem"
)

type service struct {
	config                   ServiceConfig
	appConfig                *appconfig.AppConfig
	grpcServer               *grpc.Server
	healthServer             *health.Server
	chCloseStreamConnections chan (struct{})

	log func(format string, a ...interface{})
}

func NewService(config ServiceConfig, appConfig *appconfig.AppConfig) (*service, error) {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("service: %s", format)
		log.Infof(format, a...)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %s", err)
	}

	if !config.insecure() {
		if err := generateTLSKeyPair(
			config.TLSLocation, config.ExtraIPs, config.ExtraDomains,
		); err != nil {
			return nil, fmt.Errorf("error while creating TLS keypair: %s", err)
		}
		logFn("created TLS keypair in path %s", config.TLSLocation)
	}
	chCloseStreamConnections := make(chan struct{})
	return &service{
		config, appConfig, nil, nil, chCloseStreamConnections, logFn,
	}, nil
}

func (s *service) Start() error {
	srv, err := s.start()
	if err != nil {
		return err
	}

	s.log("start listening on %s", s.config.address())

	s.grpcServer = srv
	return nil
}

func (s *service) Stop() {
	s.stop()
	s.log("shutdown")
}

func (s *service) start() (*grpc.Server, error) {
	grpcConfig := []grpc.ServerOption{
		grpc_interceptor.UnaryInterceptor(), grpc_interceptor.StreamInterceptor(),
	}
	if !s.config.insecure() {
		creds, err := credentials.NewServerTLSFromFile(
			s.config.tlsCertPath(), s.config.tlsKeyPath(),
		)
		if err != nil {
			return nil, err
		}
		grpcConfig = append(grpcConfig, grpc.Creds(creds))
	}

	lis, err := s.config.listener()
	if err != nil {
		return nil, err
	}

	grpcServer := grpc.NewServer(grpcConfig...)

	utxoHandler := grpc_handler.NewUtxoHandler(s.appConfig.UtxoService())
	selectionHandler := grpc_handler.NewSelectionHandler(
		s.appConfig.SelectionService(),
	)
	notifyHandler := grpc_handler.NewNotificationHandler(
		s.appConfig.NotificationService(), s.chCloseStreamConnections,
	)

	pb.RegisterUtxoServiceServer(grpcServer, utxoHandler)
	pb.RegisterSelectionServiceServer(grpcServer, selectionHandler)
	pb.RegisterNotificationServiceServer(grpcServer, notifyHandler)
	s.log("registered utxo handler on public interface")
	s.log("registered selection handler on public interface")
	s.log("registered notification handler on public interface")

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	for _, svc := range []string{
		pb.UtxoService_ServiceDesc.ServiceName,
		pb.SelectionService_ServiceDesc.ServiceName,
		pb.NotificationService_ServiceDesc.ServiceName,
	} {
		healthServer.SetServingStatus(svc, healthpb.HealthCheckResponse_SERVING)
	}
	s.healthServer = healthServer

	go grpcServer.Serve(lis)

	return grpcServer, nil
}

func (s *service) stop() {
	select {
	case s.chCloseStreamConnections <- struct{}{}:
		s.log("closed stream connections")
	default:
	}

	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
	s.log("stopped grpc server")

	s.appConfig.RepoManager().Close()
	s.log("closed connection with db")
}
