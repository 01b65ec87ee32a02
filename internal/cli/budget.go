package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// NewBudgetCmd создаёт группу команд для управления бюджетом.
func NewBudgetCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage spending budget",
	}

	cmd.AddCommand(
		newBudgetShowCmd(clientFn, outputFn),
		newBudgetSetLimitCmd(clientFn, outputFn),
	)

	return cmd
}

func budgetRows(b *BudgetResponse) [][]string {
	currencies := make(map[string]struct{})
	for c := range b.DailySpend {
		currencies[c] = struct{}{}
	}
	for c := range b.SpendLimits {
		currencies[c] = struct{}{}
	}

	sorted := make([]string, 0, len(currencies))
	for c := range currencies {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	rows := make([][]string, len(sorted))
	for i, c := range sorted {
		limit := "-"
		if l, ok := b.SpendLimits[c]; ok {
			limit = strconv.FormatFloat(l, 'f', 2, 64)
		}
		rows[i] = []string{
			c,
			strconv.FormatFloat(b.DailySpend[c], 'f', 2, 64),
			limit,
		}
	}
	return rows
}

var budgetHeaders = []string{"CURRENCY", "SPENT_TODAY", "DAILY_LIMIT"}

func newBudgetShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show daily spend and limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			budget, err := client.GetBudget()
			if err != nil {
				return err
			}

			out.Print(budgetHeaders, budgetRows(budget), budget)
			return nil
		},
	}
}

func newBudgetSetLimitCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var currency string
	var limit float64

	cmd := &cobra.Command{
		Use:   "set-limit",
		Short: "Set a daily spending limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			budget, err := client.SetBudgetLimit(currency, limit)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Limit set: %g %s per day", limit, currency))
			out.Print(budgetHeaders, budgetRows(budget), budget)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "USDC", "Currency code")
	cmd.Flags().Float64Var(&limit, "limit", 0, "Daily limit (required)")
	cmd.MarkFlagRequired("limit")

	return cmd
}
