package grpc

import (
	"context"

	"github.com/dmitrijs2005/docusage/internal/common"
	pb "github.com/dmitrijs2005/docusage/internal/proto"
	"github.com/dmitrijs2005/docusage/internal/server/auth"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// publicMethods need no bearer token.
var publicMethods = map[string]struct{}{
	pb.DocuSageService_Register_FullMethodName: {},
	pb.DocuSageService_Login_FullMethodName:    {},
	pb.DocuSageService_Ping_FullMethodName:     {},
}

var rateLimitedMethods = map[string]struct{}{
	pb.DocuSageService_Register_FullMethodName: {},
	pb.DocuSageService_Login_FullMethodName:    {},
}

// IdentityFromContext returns the identity stored by the auth interceptor.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*models.Identity)
	return id, ok && id != nil
}

func withIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AuthorizationHeaderName)
		if len(values) > 0 {
			header = values[0]
		}
	}

	token, err := auth.ParseBearerToken(header)
	if err != nil {
		s.logger.Warn(ctx, "rejected request without bearer token", "method", info.FullMethod)
		return nil, toStatus(err)
	}

	identity, err := s.users.Resolve(ctx, token)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(withIdentity(ctx, identity), req)
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.authLimiter == nil {
		return handler(ctx, req)
	}
	if _, ok := rateLimitedMethods[info.FullMethod]; ok && !s.authLimiter.Allow() {
		s.logger.Warn(ctx, "auth rate limit exceeded", "method", info.FullMethod)
		return nil, status.Error(codes.ResourceExhausted, "too many requests")
	}
	return handler(ctx, req)
}
