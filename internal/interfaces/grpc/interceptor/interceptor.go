package grpc_interceptor

import (
	middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"google.golang.org/grpc"
)

// UnaryInterceptor returns the middleware chain of the unary rpcs.
func UnaryInterceptor() grpc.ServerOption {
	return grpc.UnaryInterceptor(
		middleware.ChainUnaryServer(
			unaryTagsInterceptor(),
			unaryLogger,
			unaryRecoveryInterceptor(),
		),
	)
}

// StreamInterceptor returns the middleware chain of the streaming rpcs.
func StreamInterceptor() grpc.ServerOption {
	return grpc.StreamInterceptor(
		middleware.ChainStreamServer(
			streamTagsInterceptor(),
			streamLogger,
			streamRecoveryInterceptor(),
		),
	)
}
