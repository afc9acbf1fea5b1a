package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-counters/pkg/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	addr         = flag.String("addr", "localhost:50056", "Counters gRPC address (host:port)")
	numCustomers = flag.Int("customers", 200, "Number of tickets to request up front")
	priorityRate = flag.Float64("priority-rate", 0.1, "Probability that a ticket is a priority ticket (0.0-1.0)")
	joinRate     = flag.Duration("join-rate", 10*time.Millisecond, "Time between ticket requests (set to 0 for maximum speed)")
	workers      = flag.Int("workers", 8, "Concurrent kiosks requesting tickets")
	simulate     = flag.Bool("simulate", false, "Keep counters calling tickets until interrupted")
	callInterval = flag.Duration("call-interval", 2*time.Second, "Interval at which each section calls its next ticket")
	clearFirst   = flag.Bool("clear", false, "Empty every queue before starting")
)

var names = []string{
	"Ann", "Bob", "Carla", "Dee", "Emil", "Farah", "Gus", "Hana", "Ivo", "Jane",
	"Kofi", "Lena", "Milo", "Nia", "Omar", "Pia", "Quinn", "Rosa", "Sam", "Tove",
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli, cleanup, err := pkgGrpc.NewCounterClient(*addr)
	if err != nil {
		fmt.Printf("Failed to create client: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	sections, err := cli.ListSections(ctx, &counterapi.ListSectionsRequest{})
	if err != nil {
		fmt.Printf("Failed to reach counters at %s: %v\n", *addr, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Connected to counters at %s (%d sections)\n", *addr, len(sections.Sections))

	if *clearFirst {
		if _, err := cli.EmptyQueue(ctx, &counterapi.EmptyQueueRequest{}); err != nil {
			fmt.Printf("Failed to clear queues: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("🧹 Queues cleared")
	}

	sectionNames := make([]string, 0, len(sections.Sections))
	for _, s := range sections.Sections {
		sectionNames = append(sectionNames, s.Name)
	}

	issued := requestTickets(ctx, cli, sectionNames, *numCustomers)
	fmt.Printf("\n✅ Issued %d tickets\n", issued)
	printWaitTimes(ctx, cli)

	if *simulate {
		fmt.Printf("\n🎬 Calling tickets every %v per section, press Ctrl+C to stop\n\n", *callInterval)
		runCounters(ctx, cli, sectionNames)
		printFinalStats(context.Background(), cli)
	} else {
		fmt.Println("\n💡 Tip: Use --simulate to have every section call tickets continuously")
	}
}

func requestTickets(ctx context.Context, cli counterapi.CounterServiceClient, sections []string, total int) int64 {
	fmt.Printf("\n🚀 Requesting %d tickets from %d kiosks...\n", total, *workers)
	startTime := time.Now()

	jobs := make(chan int)
	var issued atomic.Int64
	var wg sync.WaitGroup

	for range *workers {
		wg.Go(func() {
			for i := range jobs {
				req := &counterapi.RequestTicketRequest{
					Section:    sections[rand.Intn(len(sections))],
					Name:       fmt.Sprintf("%s %d", names[rand.Intn(len(names))], i+1),
					IsPriority: rand.Float64() < *priorityRate,
				}
				if _, err := cli.RequestTicket(ctx, req); err != nil {
					fmt.Printf("❌ Ticket %d for %s failed: %v\n", i+1, req.Section, err)
					continue
				}
				if n := issued.Add(1); n%50 == 0 {
					fmt.Printf("   Progress: %d/%d tickets issued\n", n, total)
				}
			}
		})
	}

	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			i = total
			continue
		case jobs <- i:
		}
		if *joinRate > 0 {
			time.Sleep(*joinRate)
		}
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("⏱️  Completed in %v (%.0f tickets/sec)\n", elapsed, float64(issued.Load())/elapsed.Seconds())
	return issued.Load()
}

func runCounters(ctx context.Context, cli counterapi.CounterServiceClient, sections []string) {
	var wg sync.WaitGroup
	for _, section := range sections {
		wg.Go(func() {
			ticker := time.NewTicker(*callInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					out, err := cli.CallNextTicket(ctx, &counterapi.CallNextTicketRequest{Section: section, Counter: "sim"})
					if status.Code(err) == codes.InvalidArgument {
						continue
					}
					if err != nil {
						if ctx.Err() == nil {
							fmt.Printf("❌ %s: %v\n", section, err)
						}
						continue
					}
					fmt.Printf("[%s] 📣 %s (%d waiting)\n", time.Now().Format("15:04:05"), out.Message, out.Waiting)
				}
			}
		})
	}
	wg.Wait()
	fmt.Println("\n\n🛑 Simulation stopped")
}

func printWaitTimes(ctx context.Context, cli counterapi.CounterServiceClient) {
	out, err := cli.AverageWaitTimes(ctx, &counterapi.AverageWaitTimesRequest{})
	if err != nil {
		return
	}
	fmt.Println("📊 Average wait positions:")
	for _, s := range out.Sections {
		fmt.Printf("   %-12s %.2f (%d waiting)\n", s.Section, s.Average, s.Waiting)
	}
}

func printFinalStats(ctx context.Context, cli counterapi.CounterServiceClient) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	printWaitTimes(ctx, cli)

	last, err := cli.LastCalledTickets(ctx, &counterapi.LastCalledTicketsRequest{Limit: 5})
	if err != nil {
		return
	}
	fmt.Println("📋 Last called:")
	for _, t := range last.Tickets {
		fmt.Printf("   %s #%d %s\n", t.Section, t.Sequence, t.Name)
	}
}
