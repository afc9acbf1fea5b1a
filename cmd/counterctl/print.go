package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/util"
	"google.golang.org/grpc/status"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	gray   = color.New(color.FgHiBlack)
)

func setColor(enabled bool) {
	color.NoColor = !enabled
}

func printSections(w io.Writer, sections []*counterapi.Section) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSECTION\tWAITING")
	for _, s := range sections {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", s.Id, s.Name, s.Waiting)
	}
	tw.Flush()
}

func printIssued(w io.Writer, out *counterapi.RequestTicketResponse) {
	green.Fprintln(w, out.Message)
	fmt.Fprintf(w, "Ticket %s, %s in line for %s\n",
		ticketLabel(out.Ticket), humanize.Ordinal(int(out.Position)), out.Ticket.Section)
	if out.Receipt != "" {
		gray.Fprintf(w, "Receipt: %s\n", out.Receipt)
	}
}

func printCalled(w io.Writer, out *counterapi.CallNextTicketResponse) {
	green.Fprintln(w, out.Message)
	gray.Fprintf(w, "%d still waiting\n", out.Waiting)
}

func printQueue(w io.Writer, out *counterapi.ShowQueueResponse) {
	if len(out.Tickets) == 0 {
		yellow.Fprintf(w, "No one is waiting at %s\n", out.Section)
		return
	}

	cyan.Fprintf(w, "%s queue\n", out.Section)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, t := range out.Tickets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", humanize.Ordinal(i+1), ticketLabel(t), t.Name, sinceLabel(t.IssuedAt, "issued"))
	}
	tw.Flush()
}

func printLastCalled(w io.Writer, tickets []*counterapi.Ticket) {
	if len(tickets) == 0 {
		yellow.Fprintln(w, "No tickets have been called yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range tickets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Section, ticketLabel(t), t.Name, sinceLabel(t.CalledAt, "called"))
	}
	tw.Flush()
}

func printWaitTimes(w io.Writer, waits []*counterapi.SectionWaitTime) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tAVERAGE\tWAITING")
	for _, s := range waits {
		fmt.Fprintf(tw, "%s\t%.2f\t%d\n", s.Section, s.Average, s.Waiting)
	}
	tw.Flush()
}

func printStatus(w io.Writer, out *counterapi.TicketStatusResponse) {
	switch out.Status {
	case "called":
		green.Fprintf(w, "Ticket %s for %s has been called (%s)\n",
			ticketLabel(out.Ticket), out.Ticket.Section, sinceLabel(out.Ticket.CalledAt, "called"))
	default:
		cyan.Fprintf(w, "Ticket %s for %s is %s in line, %d waiting\n",
			ticketLabel(out.Ticket), out.Ticket.Section, humanize.Ordinal(int(out.Position)), out.Waiting)
	}
}

func ticketLabel(t *counterapi.Ticket) string {
	if t.IsPriority {
		return fmt.Sprintf("#%d (priority)", t.Sequence)
	}
	return fmt.Sprintf("#%d", t.Sequence)
}

func sinceLabel(ts, verb string) string {
	at, err := util.ParseISO8601(ts)
	if err != nil || at.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %s (%s)", verb, humanize.Time(at), util.FormatDateTime(at))
}

// describeError strips the gRPC envelope so users see the server's message.
func describeError(err error) string {
	if st, ok := status.FromError(err); ok {
		return fmt.Sprintf("error: %s (%s)", st.Message(), strings.ToLower(st.Code().String()))
	}
	return "error: " + err.Error()
}
