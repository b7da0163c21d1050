// Command planner builds a trip from flags, searches every stop through a
// running planner server and prints the cheapest options with a cost summary.
//
//	planner -type tourist -cabin economy -adults 2 \
//	    -stop "Rome,2026-06-01,2026-06-05" -stop "Paris,2026-06-05,2026-06-06"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/neexbeast/trip-planner/internal/budget"
	"github.com/neexbeast/trip-planner/internal/client"
	"github.com/neexbeast/trip-planner/internal/itinerary"
	"github.com/neexbeast/trip-planner/internal/planner"
	"github.com/neexbeast/trip-planner/pkg/currency"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, log); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "planner:", err)
		os.Exit(1)
	}
}

type options struct {
	server   string
	tripType string
	cabin    string
	adults   int
	children int
	babies   int
	stops    []planner.Destination
	budget   budget.Input
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.server, "server", "http://localhost:8080", "planner API base URL")
	fs.StringVar(&o.tripType, "type", string(planner.TripStandard), "trip type: economic, business, standard or tourist")
	fs.StringVar(&o.cabin, "cabin", string(planner.CabinEconomy), "cabin class: economy, premium_economy, business or first")
	fs.IntVar(&o.adults, "adults", 1, "number of adults")
	fs.IntVar(&o.children, "children", 0, "number of children")
	fs.IntVar(&o.babies, "babies", 0, "number of babies")
	fs.StringVar(&o.budget.FoodStyle, "food", string(budget.DefaultFoodStyle), "food style: economic, comfortable or tourist")
	fs.Float64Var(&o.budget.BeveragesPerDay, "beverages", 0, "beverage spend per person per day (BRL)")
	fs.Float64Var(&o.budget.ExtrasPerPerson, "extras", 0, "one-off extras per person (BRL)")
	fs.Func("stop", `a stop as "City,YYYY-MM-DD,YYYY-MM-DD" (repeatable, in travel order)`, func(s string) error {
		d, err := parseStop(s)
		if err != nil {
			return err
		}
		o.stops = append(o.stops, d)
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if len(o.stops) == 0 {
		return options{}, errors.New("at least one -stop is required")
	}
	return o, nil
}

// parseStop reads "City,start,end". The city may not contain commas.
func parseStop(s string) (planner.Destination, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return planner.Destination{}, fmt.Errorf("stop %q: want City,start,end", s)
	}
	d := planner.NewDestination()
	d.City = strings.TrimSpace(parts[0])
	d.StartDate = strings.TrimSpace(parts[1])
	d.EndDate = strings.TrimSpace(parts[2])
	return d, nil
}

// buildState applies the options through the planner's update operations.
func buildState(o options) (planner.State, error) {
	travelers := planner.DefaultTravelers()
	for kind, n := range map[planner.TravelerKind]int{
		planner.Adults:   o.adults - 1,
		planner.Children: o.children,
		planner.Babies:   o.babies,
	} {
		var err error
		if travelers, err = travelers.Adjust(kind, n); err != nil {
			return planner.State{}, err
		}
	}

	state := planner.NewState().
		WithTripType(planner.TripType(strings.ToLower(o.tripType))).
		WithCabinClass(planner.CabinClass(strings.ToLower(o.cabin))).
		WithTravelers(travelers).
		WithDestinations(o.stops)

	return state, state.Validate()
}

func run(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	state, err := buildState(o)
	if err != nil {
		return err
	}
	if _, err := budget.ParseFoodStyle(o.budget.FoodStyle); err != nil {
		return err
	}

	searcher := client.New(o.server, log)
	travelers := state.Travelers.Total()

	result, err := itinerary.NewOrchestrator(searcher, log).Run(ctx, state.Destinations, travelers)
	if err != nil {
		return fmt.Errorf("searching itinerary: %w", err)
	}

	breakdown, err := budget.Calculate(o.budget, result.TotalNights, travelers)
	if err != nil {
		return err
	}

	return render(stdout, state, result, budget.Summarize(result.FlightCost, result.HotelCost, breakdown))
}

func render(w io.Writer, state planner.State, result *itinerary.Result, summary budget.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Trip\t%s, %s, %d traveler(s)\n", state.TripType, state.CabinClass, result.Travelers)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "STOP\tDATES\tNIGHTS\tCHEAPEST FLIGHT\tCHEAPEST HOTEL")
	for i, s := range result.Stops {
		flight, hotel := "none found", "none found"
		if len(s.Flights) > 0 {
			f := s.Flights[0]
			flight = fmt.Sprintf("%s %s %s", f.Airline, f.FlightNumber, currency.Format(f.Price, currency.BRL))
		}
		if len(s.Hotels) > 0 {
			h := s.Hotels[0]
			hotel = fmt.Sprintf("%s %s", h.Name, currency.Format(h.TotalPrice, currency.BRL))
		}
		fmt.Fprintf(tw, "%d. %s\t%s to %s\t%d\t%s\t%s\n", i+1, s.City, s.StartDate, s.EndDate, s.Nights, flight, hotel)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Flights\t%s\n", currency.Format(summary.FlightCost, currency.BRL))
	fmt.Fprintf(tw, "Hotels\t%s\n", currency.Format(summary.HotelCost, currency.BRL))
	fmt.Fprintf(tw, "Food\t%s\n", currency.Format(summary.FoodCost, currency.BRL))
	fmt.Fprintf(tw, "Extras\t%s\n", currency.Format(summary.ExtrasCost, currency.BRL))
	fmt.Fprintf(tw, "Total\t%s\t%s\t%s\n",
		summary.Display[currency.BRL], summary.Display[currency.USD], summary.Display[currency.EUR])

	return tw.Flush()
}
