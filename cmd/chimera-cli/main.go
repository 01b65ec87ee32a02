// Chimera CLI — инструмент командной строки для управления
// кампаниями, эскалациями и бюджетом через HTTP API.
//
// Использование:
//
//	chimera [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	campaign    Управление кампаниями
//	escalation  Разбор эскалированных результатов
//	budget      Управление бюджетом
//	fleet       Состояние worker-агентов
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Chimera/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "chimera",
		Short:         "Chimera CLI — agent swarm coordination tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewCampaignCmd(clientFn, outputFn),
		cli.NewEscalationCmd(clientFn, outputFn),
		cli.NewBudgetCmd(clientFn, outputFn),
		cli.NewFleetCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
