package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loantrack-cli",
		Short: "LoanTrack CLI tool",
		Long:  `A command line interface for interacting with the LoanTrack API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LoanTrack API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	loanCmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan operations",
	}

	loanCmd.AddCommand(listLoansCmd(), scheduleCmd(), statsCmd(), payoffCmd())
	rootCmd.AddCommand(loanCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listLoansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loans",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Loans []struct {
					ID         string `json:"id"`
					Name       string `json:"name"`
					Type       string `json:"type"`
					Principal  string `json:"principal"`
					AnnualRate string `json:"annual_rate"`
					TermMonths int    `json:"term_months"`
				} `json:"loans"`
			}
			if err := getJSON("/api/v1/loans/", &resp); err != nil {
				return err
			}

			fmt.Printf("%-28s %-20s %-12s %12s %8s %6s\n", "ID", "NAME", "TYPE", "PRINCIPAL", "RATE", "TERM")
			for _, l := range resp.Loans {
				fmt.Printf("%-28s %-20s %-12s %12s %7s%% %6d\n",
					l.ID, truncate(l.Name, 20), l.Type, l.Principal, l.AnnualRate, l.TermMonths)
			}

			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "schedule <loan-id>",
		Short: "Show the reconciled amortization schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Entries []struct {
					Month            int     `json:"month"`
					ProjectedBalance string  `json:"projected_balance"`
					ActualBalance    string  `json:"actual_balance"`
					ActualPayment    *string `json:"actual_payment,omitempty"`
				} `json:"entries"`
			}

			path := fmt.Sprintf("/api/v1/loans/%s/schedule", args[0])
			if horizon > 0 {
				path = fmt.Sprintf("%s?horizon=%d", path, horizon)
			}
			if err := getJSON(path, &resp); err != nil {
				return err
			}

			fmt.Printf("%6s %18s %18s %14s\n", "MONTH", "PROJECTED", "ACTUAL", "PAYMENT")
			for _, e := range resp.Entries {
				payment := "-"
				if e.ActualPayment != nil {
					payment = *e.ActualPayment
				}
				fmt.Printf("%6d %18s %18s %14s\n", e.Month, e.ProjectedBalance, e.ActualBalance, payment)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&horizon, "horizon", 0, "Months to display (0 = all)")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <loan-id>",
		Short: "Show payment statistics for a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats map[string]any
			if err := getJSON(fmt.Sprintf("/api/v1/loans/%s/stats", args[0]), &stats); err != nil {
				return err
			}

			printJSON(stats)

			return nil
		},
	}
}

func payoffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payoff <loan-id>",
		Short: "Show the projected payoff plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				MonthlyPayment string `json:"monthly_payment"`
				TotalInterest  string `json:"total_interest"`
				CapReached     bool   `json:"cap_reached"`
				Entries        []any  `json:"entries"`
			}
			if err := getJSON(fmt.Sprintf("/api/v1/loans/%s/projection", args[0]), &resp); err != nil {
				return err
			}

			fmt.Printf("Monthly payment: %s\n", resp.MonthlyPayment)
			fmt.Printf("Total interest:  %s\n", resp.TotalInterest)
			fmt.Printf("Months to payoff: %d\n", len(resp.Entries)-1)
			if resp.CapReached {
				fmt.Println("Warning: payment does not cover interest; the balance never reaches zero.")
			}

			return nil
		},
	}
}

func getJSON(path string, out any) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
