package grpc

import (
	"fmt"

	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type cleanupFunc func()

// NewCounterClient dials the counters service. The connection is lazy; the
// first RPC establishes it.
func NewCounterClient(addr string, opts ...grpc.DialOption) (counterapi.CounterServiceClient, cleanupFunc, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("gRpc counters client for %s: %w", addr, err)
	}

	return counterapi.NewCounterServiceClient(conn), func() { conn.Close() }, nil
}
