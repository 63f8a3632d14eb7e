package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "docusage.v1.DocuSageService"

const (
	DocuSageService_Register_FullMethodName     = "/docusage.v1.DocuSageService/Register"
	DocuSageService_Login_FullMethodName        = "/docusage.v1.DocuSageService/Login"
	DocuSageService_Me_FullMethodName           = "/docusage.v1.DocuSageService/Me"
	DocuSageService_UploadFile_FullMethodName   = "/docusage.v1.DocuSageService/UploadFile"
	DocuSageService_ListFiles_FullMethodName    = "/docusage.v1.DocuSageService/ListFiles"
	DocuSageService_DownloadFile_FullMethodName = "/docusage.v1.DocuSageService/DownloadFile"
	DocuSageService_Ping_FullMethodName         = "/docusage.v1.DocuSageService/Ping"
)

// DocuSageServiceClient is the client API for DocuSageService.
type DocuSageServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error)
	UploadFile(ctx context.Context, in *UploadFileRequest, opts ...grpc.CallOption) (*UploadFileResponse, error)
	ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error)
	DownloadFile(ctx context.Context, in *DownloadFileRequest, opts ...grpc.CallOption) (*DownloadFileResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type docuSageServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDocuSageServiceClient(cc grpc.ClientConnInterface) DocuSageServiceClient {
	return &docuSageServiceClient{cc}
}

func (c *docuSageServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *docuSageServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := c.invoke(ctx, DocuSageService_Register_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docuSageServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := c.invoke(ctx, DocuSageService_Login_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docuSageServiceClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error) {
	out := new(MeResponse)
	if err := c.invoke(ctx, DocuSageService_Me_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docuSageServiceClient) UploadFile(ctx context.Context, in *UploadFileRequest, opts ...grpc.CallOption) (*UploadFileResponse, error) {
	out := new(UploadFileResponse)
	if err := c.invoke(ctx, DocuSageService_UploadFile_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docuSageServiceClient) ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error) {
	out := new(ListFilesResponse)
	if err := c.invoke(ctx, DocuSageService_ListFiles_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docuSageServiceClient) DownloadFile(ctx context.Context, in *DownloadFileRequest, opts ...grpc.CallOption) (*DownloadFileResponse, error) {
	out := new(DownloadFileResponse)
	if err := c.invoke(ctx, DocuSageService_DownloadFile_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docuSageServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, DocuSageService_Ping_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// DocuSageServiceServer is the server API for DocuSageService.
// Implementations must embed UnimplementedDocuSageServiceServer.
type DocuSageServiceServer interface {
	Register(context.Context, *RegisterRequest) (*TokenResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
	UploadFile(context.Context, *UploadFileRequest) (*UploadFileResponse, error)
	ListFiles(context.Context, *ListFilesRequest) (*ListFilesResponse, error)
	DownloadFile(context.Context, *DownloadFileRequest) (*DownloadFileResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	mustEmbedUnimplementedDocuSageServiceServer()
}

type UnimplementedDocuSageServiceServer struct{}

func (UnimplementedDocuSageServiceServer) Register(context.Context, *RegisterRequest) (*TokenResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedDocuSageServiceServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedDocuSageServiceServer) Me(context.Context, *MeRequest) (*MeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Me not implemented")
}
func (UnimplementedDocuSageServiceServer) UploadFile(context.Context, *UploadFileRequest) (*UploadFileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UploadFile not implemented")
}
func (UnimplementedDocuSageServiceServer) ListFiles(context.Context, *ListFilesRequest) (*ListFilesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListFiles not implemented")
}
func (UnimplementedDocuSageServiceServer) DownloadFile(context.Context, *DownloadFileRequest) (*DownloadFileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DownloadFile not implemented")
}
func (UnimplementedDocuSageServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedDocuSageServiceServer) mustEmbedUnimplementedDocuSageServiceServer() {}

func RegisterDocuSageServiceServer(s grpc.ServiceRegistrar, srv DocuSageServiceServer) {
	s.RegisterService(&DocuSageService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodDesc.
func unaryHandler[Req any, Resp any](fullMethod string, call func(DocuSageServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DocuSageServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DocuSageServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var DocuSageService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocuSageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(DocuSageService_Register_FullMethodName, DocuSageServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(DocuSageService_Login_FullMethodName, DocuSageServiceServer.Login)},
		{MethodName: "Me", Handler: unaryHandler(DocuSageService_Me_FullMethodName, DocuSageServiceServer.Me)},
		{MethodName: "UploadFile", Handler: unaryHandler(DocuSageService_UploadFile_FullMethodName, DocuSageServiceServer.UploadFile)},
		{MethodName: "ListFiles", Handler: unaryHandler(DocuSageService_ListFiles_FullMethodName, DocuSageServiceServer.ListFiles)},
		{MethodName: "DownloadFile", Handler: unaryHandler(DocuSageService_DownloadFile_FullMethodName, DocuSageServiceServer.DownloadFile)},
		{MethodName: "Ping", Handler: unaryHandler(DocuSageService_Ping_FullMethodName, DocuSageServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "docusage/v1/docusage.proto",
}
