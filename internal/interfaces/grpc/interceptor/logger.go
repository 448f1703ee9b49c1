package grpc_interceptor

import (
	"context"
	"time"

	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func unaryTagsInterceptor() grpc.UnaryServerInterceptor {
	return grpc_ctxtags.UnaryServerInterceptor(
		grpc_ctxtags.WithFieldExtractor(grpc_ctxtags.CodeGenRequestFieldExtractor),
	)
}

func streamTagsInterceptor() grpc.StreamServerInterceptor {
	return grpc_ctxtags.StreamServerInterceptor()
}

func unaryLogger(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	res, err := handler(ctx, req)
	logRequest(ctx, info.FullMethod, start, err)
	return res, err
}

func streamLogger(
	srv interface{},
	stream grpc.ServerStream,
	info *grpc.StreamServerInfo,
	handler grpc.StreamHandler,
) error {
	start := time.Now()
	err := handler(srv, stream)
	logRequest(stream.Context(), info.FullMethod, start, err)
	return err
}

func logRequest(ctx context.Context, method string, start time.Time, err error) {
	entry := log.WithFields(log.Fields{
		"method":   method,
		"duration": time.Since(start).String(),
	})
	for k, v := range grpc_ctxtags.Extract(ctx).Values() {
		entry = entry.WithField(k, v)
	}
	if err != nil {
		entry.WithField("code", status.Code(err).String()).Debug(err)
		return
	}
	entry.Debug("rpc served")
}
