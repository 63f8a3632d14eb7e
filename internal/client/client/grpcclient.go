package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docusage/internal/common"
	pb "github.com/dmitrijs2005/docusage/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.DocuSageServiceClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.Token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewDocuSageClient connects to endpointURL without transport security.
// Responses may carry up to maxFileBytes of file content; zero keeps the
// gRPC default limit. Extra dial options are appended, which lets tests
// swap the dialer.
func NewDocuSageClient(endpointURL string, maxFileBytes int64, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}
	if maxFileBytes > 0 {
		dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(pb.MaxMessageSize(maxFileBytes))))
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewDocuSageServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) Register(ctx context.Context, email string, password []byte) error {

	resp, err := s.client.Register(ctx, &pb.RegisterRequest{Email: email, Password: string(password)})
	if err != nil {
		return s.mapError(err)
	}

	s.SetToken(resp.GetAccessToken())
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) error {

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return s.mapError(err)
	}

	s.SetToken(resp.GetAccessToken())
	return nil
}

func (s *GRPCClient) Me(ctx context.Context) (*User, error) {

	resp, err := s.client.Me(ctx, &pb.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &User{ID: resp.ID, Email: resp.Email}, nil
}

func (s *GRPCClient) UploadFile(ctx context.Context, filename, contentType string, content []byte) (*File, error) {

	resp, err := s.client.UploadFile(ctx, &pb.UploadFileRequest{Filename: filename, ContentType: contentType, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromInfo(resp.GetFile()), nil
}

func (s *GRPCClient) ListFiles(ctx context.Context) ([]*File, error) {

	resp, err := s.client.ListFiles(ctx, &pb.ListFilesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	files := make([]*File, 0, len(resp.GetFiles()))
	for _, f := range resp.GetFiles() {
		files = append(files, fromInfo(f))
	}
	return files, nil
}

func (s *GRPCClient) DownloadFile(ctx context.Context, id string) (*File, []byte, error) {

	resp, err := s.client.DownloadFile(ctx, &pb.DownloadFileRequest{ID: id})
	if err != nil {
		return nil, nil, s.mapError(err)
	}

	return fromInfo(resp.File), resp.GetContent(), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func fromInfo(f *pb.FileInfo) *File {
	if f == nil {
		return nil
	}
	return &File{ID: f.ID, Filename: f.Filename, ContentType: f.ContentType, Size: f.Size, CreatedAt: f.CreatedAt}
}

// mapError keeps the server's message so users see why a call failed.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", ErrLimitExceeded, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
