package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docusage/internal/common"
	pb "github.com/dmitrijs2005/docusage/internal/proto"
	"github.com/dmitrijs2005/docusage/internal/server/auth"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	"github.com/dmitrijs2005/docusage/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const tokenTypeBearer = "bearer"

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.TokenResponse, error) {

	token, err := s.users.Register(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.TokenResponse, error) {

	token, err := s.users.Login(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *pb.MeRequest) (*pb.MeResponse, error) {

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, toStatus(auth.ErrAuthentication)
	}

	return &pb.MeResponse{ID: identity.ID, Email: identity.Email}, nil
}

func (s *GRPCServer) UploadFile(ctx context.Context, req *pb.UploadFileRequest) (*pb.UploadFileResponse, error) {

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, toStatus(auth.ErrAuthentication)
	}

	f, err := s.files.Upload(ctx, identity, req.Filename, req.ContentType, req.Content)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.UploadFileResponse{File: fileInfo(f)}, nil
}

func (s *GRPCServer) ListFiles(ctx context.Context, _ *pb.ListFilesRequest) (*pb.ListFilesResponse, error) {

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, toStatus(auth.ErrAuthentication)
	}

	list, err := s.files.List(ctx, identity)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.ListFilesResponse{Files: make([]*pb.FileInfo, 0, len(list))}
	for _, f := range list {
		resp.Files = append(resp.Files, fileInfo(f))
	}
	return resp, nil
}

func (s *GRPCServer) DownloadFile(ctx context.Context, req *pb.DownloadFileRequest) (*pb.DownloadFileResponse, error) {

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, toStatus(auth.ErrAuthentication)
	}

	f, content, err := s.files.Download(ctx, identity, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.DownloadFileResponse{File: fileInfo(f), Content: content}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

func fileInfo(f *models.File) *pb.FileInfo {
	return &pb.FileInfo{
		ID:          f.ID,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   f.CreatedAt,
	}
}

// toStatus maps service errors to gRPC statuses with fixed client messages.
func toStatus(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, "invalid email or password format")
	case errors.Is(err, services.ErrUnsupportedFileType):
		return status.Error(codes.InvalidArgument, "unsupported file type")
	case errors.Is(err, services.ErrInvalidFilename):
		return status.Error(codes.InvalidArgument, "invalid filename")
	case errors.Is(err, services.ErrFileTooLarge):
		return status.Error(codes.InvalidArgument, "file too large")
	case errors.Is(err, auth.ErrDuplicateUser):
		return status.Error(codes.AlreadyExists, "Email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "Incorrect email or password")
	case errors.Is(err, auth.ErrAuthentication):
		return status.Error(codes.Unauthenticated, "Could not validate credentials")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "file not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
