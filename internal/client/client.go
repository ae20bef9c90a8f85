// Package client talks to a remote "policygate serve" instance.
package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "github.com/ppiankov/policygate/api/policygate/v1"
)

// TagGateUnreachable is the violation tag returned when the server
// cannot be reached.
const TagGateUnreachable = "gate_unreachable"

// DefaultTimeout bounds every RPC that has no deadline of its own.
const DefaultTimeout = 5 * time.Second

// Client connects to a policygate gRPC server.
type Client struct {
	conn   *grpc.ClientConn
	client pb.PolicyGateClient
}

// New creates a gRPC client for the given address. The connection is lazy;
// an unreachable server only shows up on the first call.
func New(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to policy server: %w", err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewPolicyGateClient(conn),
	}, nil
}

// Check sends a task to the remote gate.
// Fail-closed: on any RPC error the returned response is non-compliant and
// tagged gate_unreachable, and the error says why.
func (c *Client) Check(ctx context.Context, task, jurisdiction string) (pb.CheckResponse, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Check(ctx, pb.CheckRequest{Task: task, Jurisdiction: jurisdiction}.ToStruct())
	if err != nil {
		return pb.CheckResponse{
			Compliant:    false,
			Violations:   []string{TagGateUnreachable},
			Jurisdiction: jurisdiction,
		}, fmt.Errorf("policy server unreachable: %w", err)
	}
	return pb.DecodeCheckResponse(resp), nil
}

// PromptBlock fetches the prompt fragment from the remote gate.
func (c *Client) PromptBlock(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	resp, err := c.client.PromptBlock(ctx, &emptypb.Empty{})
	if err != nil {
		return "", err
	}
	return resp.GetValue(), nil
}

// Rules fetches rules for one tier label, or every tier for "" or "all".
func (c *Client) Rules(ctx context.Context, tier string) (map[string][]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Rules(ctx, wrapperspb.String(tier))
	if err != nil {
		return nil, err
	}
	return pb.DecodeRules(resp), nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}
