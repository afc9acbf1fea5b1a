package counterapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "counters.v1.CounterService"

type CounterServiceServer interface {
	ListSections(context.Context, *ListSectionsRequest) (*ListSectionsResponse, error)
	RequestTicket(context.Context, *RequestTicketRequest) (*RequestTicketResponse, error)
	CallNextTicket(context.Context, *CallNextTicketRequest) (*CallNextTicketResponse, error)
	ShowQueue(context.Context, *ShowQueueRequest) (*ShowQueueResponse, error)
	AverageWaitTimes(context.Context, *AverageWaitTimesRequest) (*AverageWaitTimesResponse, error)
	LastCalledTickets(context.Context, *LastCalledTicketsRequest) (*LastCalledTicketsResponse, error)
	EmptyQueue(context.Context, *EmptyQueueRequest) (*EmptyQueueResponse, error)
	TicketStatus(context.Context, *TicketStatusRequest) (*TicketStatusResponse, error)
}

// UnimplementedCounterServiceServer can be embedded to keep servers
// compiling when methods are added.
type UnimplementedCounterServiceServer struct{}

func (UnimplementedCounterServiceServer) ListSections(context.Context, *ListSectionsRequest) (*ListSectionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSections not implemented")
}

func (UnimplementedCounterServiceServer) RequestTicket(context.Context, *RequestTicketRequest) (*RequestTicketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestTicket not implemented")
}

func (UnimplementedCounterServiceServer) CallNextTicket(context.Context, *CallNextTicketRequest) (*CallNextTicketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CallNextTicket not implemented")
}

func (UnimplementedCounterServiceServer) ShowQueue(context.Context, *ShowQueueRequest) (*ShowQueueResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ShowQueue not implemented")
}

func (UnimplementedCounterServiceServer) AverageWaitTimes(context.Context, *AverageWaitTimesRequest) (*AverageWaitTimesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AverageWaitTimes not implemented")
}

func (UnimplementedCounterServiceServer) LastCalledTickets(context.Context, *LastCalledTicketsRequest) (*LastCalledTicketsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LastCalledTickets not implemented")
}

func (UnimplementedCounterServiceServer) EmptyQueue(context.Context, *EmptyQueueRequest) (*EmptyQueueResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EmptyQueue not implemented")
}

func (UnimplementedCounterServiceServer) TicketStatus(context.Context, *TicketStatusRequest) (*TicketStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TicketStatus not implemented")
}

var CounterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CounterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ListSections", CounterServiceServer.ListSections),
		unaryMethod("RequestTicket", CounterServiceServer.RequestTicket),
		unaryMethod("CallNextTicket", CounterServiceServer.CallNextTicket),
		unaryMethod("ShowQueue", CounterServiceServer.ShowQueue),
		unaryMethod("AverageWaitTimes", CounterServiceServer.AverageWaitTimes),
		unaryMethod("LastCalledTickets", CounterServiceServer.LastCalledTickets),
		unaryMethod("EmptyQueue", CounterServiceServer.EmptyQueue),
		unaryMethod("TicketStatus", CounterServiceServer.TicketStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "counters.v1",
}

func RegisterCounterServiceServer(s grpc.ServiceRegistrar, srv CounterServiceServer) {
	s.RegisterService(&CounterService_ServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unaryMethod[Req, Resp any](name string, call func(CounterServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CounterServiceServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CounterServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
