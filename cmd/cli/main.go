package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dairyctl",
		Short:         "Dairy ledger CLI tool",
		Long:          `A command line interface for the dairy collection ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the dairy ledger API")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("DAIRY_TOKEN"), "Session token (defaults to $DAIRY_TOKEN)")

	root.AddCommand(convertCmd(), duesCmd(), dashboardCmd(), hashPasswordCmd())
	return root
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert dates between AD and BS",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tobs YYYY-MM-DD",
		Short: "Convert an AD date to BS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := domain.ParseDate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.DefaultDateConverter.ToBS(ad))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toad YYYY-MM-DD",
		Short: "Convert a BS date to AD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := domain.ParseBSDate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.DefaultDateConverter.ToAD(bs))
			return nil
		},
	})

	return cmd
}

func duesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dues",
		Short: "List every customer's billed, paid and outstanding amounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var dashboard dto.DashboardResponse
			if err := getJSON("/api/v1/reports/dashboard", &dashboard); err != nil {
				return err
			}
			printDues(cmd.OutOrStdout(), dashboard)
			return nil
		},
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the admin dashboard as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var dashboard dto.DashboardResponse
			if err := getJSON("/api/v1/reports/dashboard", &dashboard); err != nil {
				return err
			}
			printJSON(dashboard)
			return nil
		},
	}
}

// hashPasswordCmd prints a bcrypt hash for re-hashing legacy plain-text
// passwords in users.json.
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.ValidatePassword(args[0]); err != nil {
				return err
			}
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, strings.TrimRight(baseURL, "/")+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func printDues(w io.Writer, dashboard dto.DashboardResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tNAME\tBILLED\tPAID\tDUES\t")
	for _, b := range dashboard.Balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			b.CustomerID, truncate(b.Name, 24),
			b.TotalBilled.StringFixed(2), b.TotalPaid.StringFixed(2), b.Dues.StringFixed(2))
	}
	fmt.Fprintf(tw, "\tTOTAL\t%s\t%s\t%s\t\n",
		dashboard.Ledger.TotalBilled.StringFixed(2),
		dashboard.Ledger.TotalPaid.StringFixed(2),
		dashboard.Ledger.Dues.StringFixed(2))
	_ = tw.Flush()
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to format output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
