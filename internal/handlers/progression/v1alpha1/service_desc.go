package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "progression.api.v1alpha1.ProgressionService"

// Full method names, used by the client and by interceptors
const (
	ComputeLevelMethod              = "/" + ServiceName + "/ComputeLevel"
	GetPlayerProgressMethod         = "/" + ServiceName + "/GetPlayerProgress"
	ListAchievementsMethod          = "/" + ServiceName + "/ListAchievements"
	UpdateAchievementProgressMethod = "/" + ServiceName + "/UpdateAchievementProgress"
	GetRecentUnlocksMethod          = "/" + ServiceName + "/GetRecentUnlocks"
	RegisterPlayerMethod            = "/" + ServiceName + "/RegisterPlayer"
	RecordAchievementMethod         = "/" + ServiceName + "/RecordAchievement"
)

// ProgressionServiceServer is the server API for the progression service.
// Requests and responses are google.protobuf.Struct documents.
type ProgressionServiceServer interface {
	ComputeLevel(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPlayerProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAchievements(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAchievementProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecentUnlocks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterPlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordAchievement(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv ProgressionServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func methodHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProgressionServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ProgressionServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ProgressionServiceDesc describes the progression service for grpc.Server registration
var ProgressionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProgressionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ComputeLevel",
			Handler:    methodHandler(ComputeLevelMethod, ProgressionServiceServer.ComputeLevel),
		},
		{
			MethodName: "GetPlayerProgress",
			Handler:    methodHandler(GetPlayerProgressMethod, ProgressionServiceServer.GetPlayerProgress),
		},
		{
			MethodName: "ListAchievements",
			Handler:    methodHandler(ListAchievementsMethod, ProgressionServiceServer.ListAchievements),
		},
		{
			MethodName: "UpdateAchievementProgress",
			Handler: methodHandler(UpdateAchievementProgressMethod,
				ProgressionServiceServer.UpdateAchievementProgress),
		},
		{
			MethodName: "GetRecentUnlocks",
			Handler:    methodHandler(GetRecentUnlocksMethod, ProgressionServiceServer.GetRecentUnlocks),
		},
		{
			MethodName: "RegisterPlayer",
			Handler:    methodHandler(RegisterPlayerMethod, ProgressionServiceServer.RegisterPlayer),
		},
		{
			MethodName: "RecordAchievement",
			Handler:    methodHandler(RecordAchievementMethod, ProgressionServiceServer.RecordAchievement),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "progression/api/v1alpha1/progression.proto",
}

// RegisterProgressionServiceServer registers srv on s
func RegisterProgressionServiceServer(s grpc.ServiceRegistrar, srv ProgressionServiceServer) {
	s.RegisterService(&ProgressionServiceDesc, srv)
}

// ProgressionServiceClient is the client API for the progression service
type ProgressionServiceClient interface {
	ComputeLevel(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetPlayerProgress(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListAchievements(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateAchievementProgress(
		ctx context.Context,
		in *structpb.Struct,
		opts ...grpc.CallOption,
	) (*structpb.Struct, error)
	GetRecentUnlocks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RegisterPlayer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RecordAchievement(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type progressionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProgressionServiceClient creates a client on an existing connection
func NewProgressionServiceClient(cc grpc.ClientConnInterface) ProgressionServiceClient {
	return &progressionServiceClient{cc: cc}
}

func (c *progressionServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressionServiceClient) ComputeLevel(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, ComputeLevelMethod, in, opts...)
}

func (c *progressionServiceClient) GetPlayerProgress(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GetPlayerProgressMethod, in, opts...)
}

func (c *progressionServiceClient) ListAchievements(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, ListAchievementsMethod, in, opts...)
}

func (c *progressionServiceClient) UpdateAchievementProgress(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, UpdateAchievementProgressMethod, in, opts...)
}

func (c *progressionServiceClient) GetRecentUnlocks(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GetRecentUnlocksMethod, in, opts...)
}

func (c *progressionServiceClient) RegisterPlayer(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, RegisterPlayerMethod, in, opts...)
}

func (c *progressionServiceClient) RecordAchievement(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, RecordAchievementMethod, in, opts...)
}
