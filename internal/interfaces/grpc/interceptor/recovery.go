package grpc_interceptor

import (
	"runtime/debug"

	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func recoveryHandler(p interface{}) error {
	log.Errorf("recovered from panic: %v\n%s", p, debug.Stack())
	return status.Errorf(codes.Internal, "internal error")
}

func unaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return grpc_recovery.UnaryServerInterceptor(
		grpc_recovery.WithRecoveryHandler(recoveryHandler),
	)
}

func streamRecoveryInterceptor() grpc.StreamServerInterceptor {
	return grpc_recovery.StreamServerInterceptor(
		grpc_recovery.WithRecoveryHandler(recoveryHandler),
	)
}
