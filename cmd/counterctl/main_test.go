package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeClient struct {
	counterapi.CounterServiceClient
	requested *counterapi.RequestTicketRequest
	called    *counterapi.CallNextTicketRequest
	cleared   bool
}

func (f *fakeClient) ListSections(ctx context.Context, in *counterapi.ListSectionsRequest, opts ...grpc.CallOption) (*counterapi.ListSectionsResponse, error) {
	return &counterapi.ListSectionsResponse{Sections: []*counterapi.Section{
		{Id: 1, Name: "Bakery", Waiting: 2},
		{Id: 2, Name: "Deli"},
	}}, nil
}

func (f *fakeClient) RequestTicket(ctx context.Context, in *counterapi.RequestTicketRequest, opts ...grpc.CallOption) (*counterapi.RequestTicketResponse, error) {
	f.requested = in
	return &counterapi.RequestTicketResponse{
		Ticket:   &counterapi.Ticket{Section: "Deli", Sequence: 4, Name: in.Name, IsPriority: in.IsPriority},
		Position: 2,
		Waiting:  3,
		Receipt:  "rcpt",
		Message:  "Priority Ticket for Deli requested for Jane, position 2 in queue",
	}, nil
}

func (f *fakeClient) CallNextTicket(ctx context.Context, in *counterapi.CallNextTicketRequest, opts ...grpc.CallOption) (*counterapi.CallNextTicketResponse, error) {
	f.called = in
	return nil, status.Error(codes.InvalidArgument, "there are no tickets in the Deli queue")
}

func (f *fakeClient) ShowQueue(ctx context.Context, in *counterapi.ShowQueueRequest, opts ...grpc.CallOption) (*counterapi.ShowQueueResponse, error) {
	return &counterapi.ShowQueueResponse{Section: "Bakery", Tickets: []*counterapi.Ticket{
		{Section: "Bakery", Sequence: 1, Name: "Ann"},
		{Section: "Bakery", Sequence: 2, Name: "Bob"},
	}}, nil
}

func (f *fakeClient) EmptyQueue(ctx context.Context, in *counterapi.EmptyQueueRequest, opts ...grpc.CallOption) (*counterapi.EmptyQueueResponse, error) {
	f.cleared = true
	return &counterapi.EmptyQueueResponse{Message: "All queues cleared"}, nil
}

func (f *fakeClient) AverageWaitTimes(ctx context.Context, in *counterapi.AverageWaitTimesRequest, opts ...grpc.CallOption) (*counterapi.AverageWaitTimesResponse, error) {
	return &counterapi.AverageWaitTimesResponse{Sections: []*counterapi.SectionWaitTime{
		{Section: "Bakery", Average: 1.5, Waiting: 2},
	}}, nil
}

func (f *fakeClient) TicketStatus(ctx context.Context, in *counterapi.TicketStatusRequest, opts ...grpc.CallOption) (*counterapi.TicketStatusResponse, error) {
	return &counterapi.TicketStatusResponse{
		Ticket:   &counterapi.Ticket{Section: "Deli", Sequence: 4, Name: "Jane"},
		Status:   "waiting",
		Position: 3,
		Waiting:  5,
	}, nil
}

func run(t *testing.T, f *fakeClient, args ...string) (string, string, error) {
	t.Helper()

	var gotAddr string
	root := newRootCommand(func(addr string) (counterapi.CounterServiceClient, func(), error) {
		gotAddr = addr
		return f, func() {}, nil
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := root.ExecuteContext(ctx)
	return out.String(), gotAddr, err
}

func TestSectionsCommand(t *testing.T) {
	out, addr, err := run(t, &fakeClient{}, "sections")
	require.NoError(t, err)
	assert.Equal(t, "localhost:50056", addr)
	assert.Contains(t, out, "Bakery")
	assert.Contains(t, out, "Deli")
}

func TestAddrFromEnv(t *testing.T) {
	t.Setenv("COUNTERCTL_ADDR", "counters:6000")

	_, addr, err := run(t, &fakeClient{}, "sections")
	require.NoError(t, err)
	assert.Equal(t, "counters:6000", addr)
}

func TestRequestCommand(t *testing.T) {
	f := &fakeClient{}
	out, _, err := run(t, f, "request", "Deli", "--name", "Jane", "--priority")
	require.NoError(t, err)

	require.NotNil(t, f.requested)
	assert.Equal(t, "Deli", f.requested.Section)
	assert.True(t, f.requested.IsPriority)
	assert.Contains(t, out, "Priority Ticket for Deli requested for Jane, position 2 in queue")
	assert.Contains(t, out, "#4 (priority), 2nd in line for Deli")
	assert.Contains(t, out, "Receipt: rcpt")
}

func TestRequestCommandNeedsName(t *testing.T) {
	f := &fakeClient{}
	_, _, err := run(t, f, "request", "Deli")
	require.Error(t, err)
	assert.Nil(t, f.requested)
}

func TestCallCommandEmptyQueue(t *testing.T) {
	f := &fakeClient{}
	_, _, err := run(t, f, "call", "Deli", "--counter", "desk-2")
	require.Error(t, err)
	assert.Equal(t, "desk-2", f.called.Counter)
	assert.Equal(t, "error: there are no tickets in the Deli queue (invalidargument)", describeError(err))
}

func TestQueueCommand(t *testing.T) {
	out, _, err := run(t, &fakeClient{}, "queue", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bakery queue")
	assert.Contains(t, out, "1st")
	assert.Contains(t, out, "2nd")
	assert.Contains(t, out, "Bob")
}

func TestWaitTimesCommand(t *testing.T) {
	out, _, err := run(t, &fakeClient{}, "wait-times")
	require.NoError(t, err)
	assert.Contains(t, out, "1.50")
}

func TestStatusCommand(t *testing.T) {
	out, _, err := run(t, &fakeClient{}, "status", "rcpt")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticket #4 for Deli is 3rd in line, 5 waiting")
}

func TestClearRequiresConfirmation(t *testing.T) {
	f := &fakeClient{}
	_, _, err := run(t, f, "clear")
	require.Error(t, err)
	assert.False(t, f.cleared)

	out, _, err := run(t, f, "clear", "--yes")
	require.NoError(t, err)
	assert.True(t, f.cleared)
	assert.Contains(t, out, "All queues cleared")
}
