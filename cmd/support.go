package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paanihub/paanictl/internal/support"
)

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Help pages, complaints, reviews and the support mailbox",
}

var supportContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the support team",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		message, _ := cmd.Flags().GetString("message")
		if name == "" {
			name = prompt("Name")
		}
		if email == "" {
			email = prompt("Email")
		}
		if message == "" {
			message = prompt("Message")
		}
		if err := app.api.SendSupportEmail(cmd.Context(), name, email, message); err != nil {
			return fmt.Errorf("sending support message: %w", err)
		}
		fmt.Println("Your message has been sent! We'll get back to you shortly.")
		return nil
	},
}

var supportFAQCmd = &cobra.Command{
	Use:   "faq",
	Short: "Show the driver FAQ",
	Run: func(cmd *cobra.Command, args []string) {
		for _, faq := range support.DriverFAQs() {
			fmt.Printf("Q: %s\nA: %s\n\n", faq.Question, faq.Answer)
		}
	},
}

var supportChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the automated assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")
		if message != "" {
			fmt.Println(support.CannedReply(message))
			return nil
		}
		fmt.Println("Type your question, or 'quit' to leave.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("you> ")
			if !scanner.Scan() {
				return nil
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				return nil
			}
			fmt.Printf("bot> %s\n", support.CannedReply(line))
		}
	},
}

var complaintsCmd = &cobra.Command{
	Use:   "complaints",
	Short: "Track water delivery complaints",
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker := support.NewComplaintTracker()

		if add, _ := cmd.Flags().GetBool("add"); add {
			title := prompt("Title")
			description := prompt("Description")
			status, _ := cmd.Flags().GetString("status")
			complaint := tracker.Add(title, description, status)
			fmt.Printf("Complaint #%d recorded\n", complaint.ID)
		}

		for _, complaint := range tracker.List() {
			fmt.Printf("#%d  [%s]  %s\n    %s\n", complaint.ID, complaint.Status, complaint.Title, complaint.Description)
		}
		return nil
	},
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Ratings left for recent deliveries",
	RunE: func(cmd *cobra.Command, args []string) error {
		book := support.NewReviewBook()

		if add, _ := cmd.Flags().GetBool("add"); add {
			orderID := prompt("Order id")
			ratingStr := prompt("Rating (1-5)")
			rating, err := strconv.Atoi(ratingStr)
			if err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}
			comment := prompt("Review")
			book.Add(orderID, rating, comment)
		}

		for _, review := range book.List() {
			stars := strings.Repeat("*", review.Rating)
			fmt.Printf("%s  %s  %-5s  %s\n", review.OrderID, review.ReviewDate, stars, review.Comment)
		}
		return nil
	},
}

func init() {
	supportContactCmd.Flags().String("name", "", "your name")
	supportContactCmd.Flags().String("email", "", "reply-to email")
	supportContactCmd.Flags().String("message", "", "message body")

	supportChatCmd.Flags().String("message", "", "ask a single question and exit")

	complaintsCmd.Flags().Bool("add", false, "record a new complaint first")
	complaintsCmd.Flags().String("status", "", "status for the new complaint")

	reviewsCmd.Flags().Bool("add", false, "record a new review first")

	supportCmd.AddCommand(supportContactCmd, supportFAQCmd, supportChatCmd, complaintsCmd, reviewsCmd)
	rootCmd.AddCommand(supportCmd)
}
