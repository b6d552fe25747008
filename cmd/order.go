package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/flows"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and settle water delivery orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Request a delivery and wait for a driver",
	Long: `Resolves the delivery address, announces the request to nearby drivers
and waits until one accepts. Ctrl-C retracts the request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if err := app.requireAuth(ctx); err != nil {
			return err
		}

		placement := flows.NewPlacement(app.geocoder, app.profile, app.openChannel, app.rec, log)

		to, _ := cmd.Flags().GetString("to")
		bid, _ := cmd.Flags().GetString("bid")
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")

		if to != "" {
			placement.SetOrigin(to)
		} else if lat != 0 || lng != 0 {
			loc, err := placement.UseCurrentLocation(ctx, lat, lng)
			if err != nil {
				return err
			}
			fmt.Printf("Delivering to %s\n", loc.Address)
		} else {
			placement.SetOrigin(prompt("Delivery address"))
		}
		if bid == "" {
			bid = prompt("Bid amount")
		}
		placement.SetBid(bid)

		// Ctrl-C cancels the wait and retracts the request
		waitCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		fmt.Println("Searching for a driver... (Ctrl-C to cancel)")
		match, err := placement.Submit(waitCtx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Println("Request cancelled")
				return nil
			}
			return err
		}
		fmt.Printf("Driver found! Starting from %s (%.6f, %.6f)\n",
			match.Driver.Address, match.Driver.Lat, match.Driver.Lng)
		return nil
	},
}

var orderStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the order currently under way",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if err := app.requireAuth(ctx); err != nil {
			return err
		}

		active := flows.NewActiveOrder(app.api, app.profile, confirm, app.rec, log)
		if err := active.Refresh(ctx); err != nil {
			return err
		}
		order := active.Order()
		if order == nil {
			fmt.Println("No running order found")
			return nil
		}
		printOrder(order.ID, order.Status, order.From.Address, order.To.Address, order.Bid)
		return nil
	},
}

var orderCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark the running order delivered",
	RunE:  func(cmd *cobra.Command, args []string) error { return settleOrder(cmd.Context(), true) },
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the running order",
	RunE:  func(cmd *cobra.Command, args []string) error { return settleOrder(cmd.Context(), false) },
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all orders on record",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if err := app.requireAuth(ctx); err != nil {
			return err
		}
		orders, err := app.api.AllOrders(ctx)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders on record")
			return nil
		}
		for _, order := range orders {
			printOrder(order.ID, order.Status, order.From.Address, order.To.Address, order.Bid)
		}
		return nil
	},
}

func settleOrder(ctx context.Context, complete bool) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(ctx); err != nil {
		return err
	}
	active := flows.NewActiveOrder(app.api, app.profile, confirm, app.rec, log)
	if err := active.Refresh(ctx); err != nil {
		return err
	}

	if complete {
		err = active.Complete(ctx)
	} else {
		err = active.Cancel(ctx)
	}
	switch {
	case errors.Is(err, api.ErrNoActiveOrder):
		fmt.Println("No running order found")
		return nil
	case errors.Is(err, flows.ErrOrderFinished):
		fmt.Println("Order is already completed or cancelled")
		return nil
	case errors.Is(err, flows.ErrAborted):
		return nil
	case err != nil:
		return err
	}

	if complete {
		fmt.Println("Order completed")
	} else {
		fmt.Println("Order cancelled")
	}
	return nil
}

func printOrder(id, status, from, to string, bid float64) {
	fmt.Printf("%s  [%s]  %s -> %s  bid %.0f\n", id, status, from, to, bid)
}

func init() {
	orderPlaceCmd.Flags().String("to", "", "delivery address")
	orderPlaceCmd.Flags().String("bid", "", "bid amount")
	orderPlaceCmd.Flags().Float64("lat", 0, "device latitude, used with --lng instead of --to")
	orderPlaceCmd.Flags().Float64("lng", 0, "device longitude")

	orderCmd.AddCommand(orderPlaceCmd, orderStatusCmd, orderCompleteCmd, orderCancelCmd, orderListCmd)
	rootCmd.AddCommand(orderCmd)
}
