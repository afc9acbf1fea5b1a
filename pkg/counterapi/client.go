package counterapi

import (
	"context"

	"google.golang.org/grpc"
)

type CounterServiceClient interface {
	ListSections(ctx context.Context, in *ListSectionsRequest, opts ...grpc.CallOption) (*ListSectionsResponse, error)
	RequestTicket(ctx context.Context, in *RequestTicketRequest, opts ...grpc.CallOption) (*RequestTicketResponse, error)
	CallNextTicket(ctx context.Context, in *CallNextTicketRequest, opts ...grpc.CallOption) (*CallNextTicketResponse, error)
	ShowQueue(ctx context.Context, in *ShowQueueRequest, opts ...grpc.CallOption) (*ShowQueueResponse, error)
	AverageWaitTimes(ctx context.Context, in *AverageWaitTimesRequest, opts ...grpc.CallOption) (*AverageWaitTimesResponse, error)
	LastCalledTickets(ctx context.Context, in *LastCalledTicketsRequest, opts ...grpc.CallOption) (*LastCalledTicketsResponse, error)
	EmptyQueue(ctx context.Context, in *EmptyQueueRequest, opts ...grpc.CallOption) (*EmptyQueueResponse, error)
	TicketStatus(ctx context.Context, in *TicketStatusRequest, opts ...grpc.CallOption) (*TicketStatusResponse, error)
}

type counterServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCounterServiceClient(cc grpc.ClientConnInterface) CounterServiceClient {
	return &counterServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *counterServiceClient) ListSections(ctx context.Context, in *ListSectionsRequest, opts ...grpc.CallOption) (*ListSectionsResponse, error) {
	return invoke[ListSectionsResponse](ctx, c.cc, "ListSections", in, opts)
}

func (c *counterServiceClient) RequestTicket(ctx context.Context, in *RequestTicketRequest, opts ...grpc.CallOption) (*RequestTicketResponse, error) {
	return invoke[RequestTicketResponse](ctx, c.cc, "RequestTicket", in, opts)
}

func (c *counterServiceClient) CallNextTicket(ctx context.Context, in *CallNextTicketRequest, opts ...grpc.CallOption) (*CallNextTicketResponse, error) {
	return invoke[CallNextTicketResponse](ctx, c.cc, "CallNextTicket", in, opts)
}

func (c *counterServiceClient) ShowQueue(ctx context.Context, in *ShowQueueRequest, opts ...grpc.CallOption) (*ShowQueueResponse, error) {
	return invoke[ShowQueueResponse](ctx, c.cc, "ShowQueue", in, opts)
}

func (c *counterServiceClient) AverageWaitTimes(ctx context.Context, in *AverageWaitTimesRequest, opts ...grpc.CallOption) (*AverageWaitTimesResponse, error) {
	return invoke[AverageWaitTimesResponse](ctx, c.cc, "AverageWaitTimes", in, opts)
}

func (c *counterServiceClient) LastCalledTickets(ctx context.Context, in *LastCalledTicketsRequest, opts ...grpc.CallOption) (*LastCalledTicketsResponse, error) {
	return invoke[LastCalledTicketsResponse](ctx, c.cc, "LastCalledTickets", in, opts)
}

func (c *counterServiceClient) EmptyQueue(ctx context.Context, in *EmptyQueueRequest, opts ...grpc.CallOption) (*EmptyQueueResponse, error) {
	return invoke[EmptyQueueResponse](ctx, c.cc, "EmptyQueue", in, opts)
}

func (c *counterServiceClient) TicketStatus(ctx context.Context, in *TicketStatusRequest, opts ...grpc.CallOption) (*TicketStatusResponse, error) {
	return invoke[TicketStatusResponse](ctx, c.cc, "TicketStatus", in, opts)
}
