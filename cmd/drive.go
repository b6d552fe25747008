package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paanihub/paanictl/internal/flows"
	"github.com/paanihub/paanictl/internal/models"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Serve delivery requests as a driver",
	Long: `Opens the live request queue and waits for commands:

  list          show the queued requests
  accept <id>   offer to serve a request
  decline <id>  remove a request from your queue
  quit          close the queue and exit`,
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
		prof := app.profile.Current()
		if prof.Role != models.RoleDriver {
			return fmt.Errorf("current role is %s, run 'paanictl profile switch-role' first", prof.Role)
		}
		if !app.profile.Complete() {
			return fmt.Errorf("driver profile incomplete, fill the missing fields with 'paanictl profile update'")
		}

		queue := flows.NewDriverQueue(app.api, app.profile, app.openChannel, confirm, app.rec, log)

		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		if lat != 0 || lng != 0 {
			loc, err := queue.UseCurrentLocation(ctx, app.geocoder, lat, lng)
			if err != nil {
				log.WithError(err).Warn("resolving pickup location, coordinates kept without address")
				queue.SetLocation(models.Location{Lat: lat, Lng: lng})
			} else {
				fmt.Printf("Driving from %s\n", loc.Address)
			}
		}

		if err := queue.Start(ctx); err != nil {
			return err
		}
		defer queue.Stop()

		fmt.Println("Listening for delivery requests. Type 'help' for commands.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return nil
			}
			parts := strings.Fields(scanner.Text())
			if len(parts) == 0 {
				continue
			}
			switch parts[0] {
			case "list":
				printQueue(queue)
			case "accept":
				if len(parts) < 2 {
					fmt.Println("usage: accept <order-id>")
					continue
				}
				handleQueueErr(queue.Accept(ctx, parts[1]))
			case "decline":
				if len(parts) < 2 {
					fmt.Println("usage: decline <order-id>")
					continue
				}
				handleQueueErr(queue.Decline(ctx, parts[1]))
			case "quit", "exit":
				return nil
			case "help":
				fmt.Println("commands: list, accept <id>, decline <id>, quit")
			default:
				fmt.Printf("unknown command %q, type 'help'\n", parts[0])
			}
		}
	},
}

func printQueue(queue *flows.DriverQueue) {
	requests := queue.Requests()
	if len(requests) == 0 {
		fmt.Println("No delivery requests queued")
		return
	}
	for _, req := range requests {
		fmt.Printf("%s  [%s]  %s -> %s  bid %s\n",
			req.OrderID, req.Status, req.CustomerName, req.To.Address, req.BidAmount)
	}
}

func handleQueueErr(err error) {
	switch {
	case err == nil:
	case errors.Is(err, flows.ErrDriverBusy):
		fmt.Println("You already have an order in progress")
	case errors.Is(err, flows.ErrUnknownRequest):
		fmt.Println("No such request in the queue")
	case errors.Is(err, flows.ErrOrderFinished):
		fmt.Println("That request is already settled")
	case errors.Is(err, flows.ErrAborted):
	default:
		fmt.Printf("error: %v\n", err)
	}
}

func init() {
	driveCmd.Flags().Float64("lat", 0, "device latitude for the pickup position")
	driveCmd.Flags().Float64("lng", 0, "device longitude")
	rootCmd.AddCommand(driveCmd)
}
