// Package policygatev1 defines the PolicyGate gRPC service.
//
// Messages are protobuf well-known types (Struct, StringValue, Empty) so the
// service needs no protoc step. The typed helpers in messages.go convert
// between those and Go structs.
package policygatev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "policygate.v1.PolicyGate"

	CheckMethod       = "/policygate.v1.PolicyGate/Check"
	PromptBlockMethod = "/policygate.v1.PolicyGate/PromptBlock"
	RulesMethod       = "/policygate.v1.PolicyGate/Rules"
)

// PolicyGateServer is the server API for the PolicyGate service.
type PolicyGateServer interface {
	Check(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PromptBlock(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Rules(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// UnimplementedPolicyGateServer can be embedded to have forward compatible implementations.
type UnimplementedPolicyGateServer struct{}

func (UnimplementedPolicyGateServer) Check(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Check not implemented")
}
func (UnimplementedPolicyGateServer) PromptBlock(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method PromptBlock not implemented")
}
func (UnimplementedPolicyGateServer) Rules(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Rules not implemented")
}

// RegisterPolicyGateServer registers the service on a gRPC server.
func RegisterPolicyGateServer(s grpc.ServiceRegistrar, srv PolicyGateServer) {
	s.RegisterService(&PolicyGate_ServiceDesc, srv)
}

// PolicyGateClient is the client API for the PolicyGate service.
type PolicyGateClient interface {
	Check(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PromptBlock(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Rules(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type policyGateClient struct{ cc grpc.ClientConnInterface }

func NewPolicyGateClient(cc grpc.ClientConnInterface) PolicyGateClient {
	return &policyGateClient{cc: cc}
}

func (c *policyGateClient) Check(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CheckMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *policyGateClient) PromptBlock(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, PromptBlockMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *policyGateClient) Rules(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RulesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _PolicyGate_Check_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PolicyGateServer).Check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CheckMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PolicyGateServer).Check(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _PolicyGate_PromptBlock_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PolicyGateServer).PromptBlock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PromptBlockMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PolicyGateServer).PromptBlock(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _PolicyGate_Rules_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PolicyGateServer).Rules(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RulesMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PolicyGateServer).Rules(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// PolicyGate_ServiceDesc is the grpc.ServiceDesc for the PolicyGate service.
var PolicyGate_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PolicyGateServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Check", Handler: _PolicyGate_Check_Handler},
		{MethodName: "PromptBlock", Handler: _PolicyGate_PromptBlock_Handler},
		{MethodName: "Rules", Handler: _PolicyGate_Rules_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "policygate/v1/policygate.proto",
}
