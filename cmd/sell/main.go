// Command sell is the terminal counterpart of the admin interface: it
// lists active raffles and their boards, lets the operator pick tickets in
// single or multi mode, and runs the sale workflow against the backend.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"sorteos/catalog"
	"sorteos/clients"
	"sorteos/entity"
	"sorteos/sale"
	"sorteos/selection"
)

type options struct {
	backendURL    string
	raffleID      int
	customerEmail string
	ticketNumbers []int
	yes           bool
}

func main() {
	var opts options
	pflag.StringVar(&opts.backendURL, "backend", os.Getenv("BACKEND_URL"), "base URL of the lottery backend")
	pflag.IntVar(&opts.raffleID, "raffle", 0, "raffle id to sell from (omit for interactive pick)")
	pflag.StringVar(&opts.customerEmail, "customer", "", "email of the buying customer")
	pflag.IntSliceVar(&opts.ticketNumbers, "tickets", nil, "ticket numbers to sell (omit for interactive pick)")
	pflag.BoolVar(&opts.yes, "yes", false, "skip the confirmation prompt")
	pflag.Parse()

	logrus.SetLevel(logrus.WarnLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		if errors.Is(err, sale.ErrDeclined) {
			fmt.Println("Sale aborted.")
			return
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// nopPublisher drops outcome events; the CLI runs without the message
// infrastructure and relies on the admin service for journaling.
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, any) error {
	return nil
}

func run(ctx context.Context, opts options) error {
	backend, err := clients.New(opts.backendURL)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	rafflesClient := clients.NewRafflesClient(backend)
	customersClient := clients.NewCustomersClient(backend)
	salesClient := clients.NewSalesClient(backend)

	loader := catalog.NewLoader(rafflesClient, rafflesClient, nil)
	workflow := sale.NewWorkflow(sale.NewExecutor(salesClient), loader, nopPublisher{})

	in := bufio.NewScanner(os.Stdin)

	raffle, err := pickRaffle(ctx, loader, in, opts.raffleID)
	if err != nil {
		return err
	}

	if opts.customerEmail == "" {
		opts.customerEmail = prompt(in, "Customer email: ")
	}
	customer, err := customersClient.ByEmail(ctx, opts.customerEmail)
	if err != nil {
		return err
	}

	board, err := loader.Board(ctx, raffle.ID)
	if err != nil {
		return err
	}
	printBoard(board)

	sel := selection.New()
	sel.SetRaffle(raffle.ID)

	if len(opts.ticketNumbers) > 0 {
		if err := selectByNumbers(sel, board, opts.ticketNumbers); err != nil {
			return err
		}
	} else if err := selectInteractively(sel, board, in); err != nil {
		return err
	}

	var confirm sale.Confirmer = stdinConfirmer{in: in}
	if opts.yes {
		confirm = sale.AutoConfirm{}
	}

	result, err := workflow.SellSelected(ctx, board, raffle, customer, sel, confirm)
	if err != nil {
		return err
	}

	printReport(result.Report)
	printBoard(result.Inventory)

	return nil
}

func pickRaffle(ctx context.Context, loader *catalog.Loader, in *bufio.Scanner, raffleID int) (entity.Raffle, error) {
	raffles, err := loader.ActiveRaffles(ctx)
	if err != nil {
		// A failed catalog load is not fatal to the session, but with no
		// raffles there is nothing to sell.
		fmt.Fprintf(os.Stderr, "warning: %s\n", err)
		raffles = nil
	}
	if len(raffles) == 0 {
		return entity.Raffle{}, errors.New("no active raffles")
	}

	if raffleID != 0 {
		for _, r := range raffles {
			if r.ID == raffleID {
				return r, nil
			}
		}
		return entity.Raffle{}, fmt.Errorf("raffle %d is not active", raffleID)
	}

	fmt.Println("Active raffles:")
	for _, r := range raffles {
		fmt.Printf("  %d: %s (%s, %d tickets)\n", r.ID, r.Name, r.Date.Format("2006-01-02"), r.TicketCount)
	}

	for {
		id, err := strconv.Atoi(prompt(in, "Raffle id: "))
		if err != nil {
			fmt.Println("Enter a raffle id from the list.")
			continue
		}
		for _, r := range raffles {
			if r.ID == id {
				return r, nil
			}
		}
		fmt.Println("Enter a raffle id from the list.")
	}
}

func selectByNumbers(sel *selection.Selection, board *catalog.Inventory, numbers []int) error {
	byNumber := map[int]entity.Ticket{}
	for _, t := range board.Display() {
		byNumber[t.Number] = t
	}

	if len(numbers) == 1 {
		t, ok := byNumber[numbers[0]]
		if !ok {
			return fmt.Errorf("ticket number %d is not on the board", numbers[0])
		}
		return sel.Select(t)
	}

	for _, n := range numbers {
		t, ok := byNumber[n]
		if !ok {
			return fmt.Errorf("ticket number %d is not on the board", n)
		}
		sel.Toggle(t)
	}

	return nil
}

// selectInteractively drives the selection state machine from stdin:
//
//	s N     pick ticket number N (single mode)
//	t N     toggle ticket number N (multi mode)
//	sell    proceed to confirmation
//	quit    abort
func selectInteractively(sel *selection.Selection, board *catalog.Inventory, in *bufio.Scanner) error {
	byNumber := map[int]entity.Ticket{}
	for _, t := range board.Display() {
		byNumber[t.Number] = t
	}

	for {
		line := prompt(in, "> ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "sell":
			return nil
		case "quit", "q":
			return sale.ErrDeclined
		case "s", "t":
			if len(fields) != 2 {
				fmt.Println("usage: s N | t N | sell | quit")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("ticket number must be an integer")
				continue
			}
			ticket, ok := byNumber[n]
			if !ok {
				fmt.Printf("ticket number %d is not on the board\n", n)
				continue
			}

			if fields[0] == "s" {
				if err := sel.Select(ticket); err != nil {
					fmt.Printf("ticket %d is not available\n", n)
					continue
				}
				fmt.Printf("selected ticket %d\n", n)
			} else {
				sel.Toggle(ticket)
				fmt.Printf("selection: %s\n", numbersOf(sel, byNumber))
			}
		default:
			fmt.Println("usage: s N | t N | sell | quit")
		}
	}
}

func numbersOf(sel *selection.Selection, byNumber map[int]entity.Ticket) string {
	byID := map[int]int{}
	for n, t := range byNumber {
		byID[t.ID] = n
	}

	var numbers []string
	for _, id := range sel.TicketIDs() {
		numbers = append(numbers, strconv.Itoa(byID[id]))
	}
	if len(numbers) == 0 {
		return "(empty)"
	}
	return strings.Join(numbers, ", ")
}

type stdinConfirmer struct {
	in *bufio.Scanner
}

func (c stdinConfirmer) ConfirmSale(_ context.Context, summary sale.Summary) (bool, error) {
	fmt.Printf("Sell in %q:\n", summary.RaffleName)
	for _, t := range summary.Tickets {
		fmt.Printf("  ticket %d at %.2f\n", t.Number, t.Price)
	}
	fmt.Printf("Total: %.2f\n", summary.Total)

	answer := prompt(c.in, "Proceed? [y/N] ")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func printBoard(board *catalog.Inventory) {
	available := board.Available()
	sold := board.Sold()

	fmt.Printf("Board for raffle %d (%d available, %d sold):\n", board.RaffleID(), len(available), len(sold))
	for _, t := range available {
		fmt.Printf("  %4d  %8.2f  available\n", t.Number, t.Price)
	}
	for _, t := range sold {
		fmt.Printf("  %4d  %8.2f  sold\n", t.Number, t.Price)
	}
}

func printReport(report sale.Report) {
	switch report.Outcome {
	case sale.OutcomeFull:
		fmt.Printf("All tickets sold: %v\n", report.Succeeded)
	case sale.OutcomeNone:
		fmt.Printf("No tickets sold. Failed: %v\n", report.Failed)
	default:
		fmt.Printf("Partially sold. Sold: %v, failed: %v\n", report.Succeeded, report.Failed)
	}

	for _, a := range report.Attempts {
		if a.Status == sale.AttemptReverted && a.Conflict {
			fmt.Printf("  ticket %d was taken by another sale\n", a.Number)
		}
	}
}
