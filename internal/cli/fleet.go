package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

// NewFleetCmd создаёт команду просмотра состояния агентов.
func NewFleetCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "fleet",
		Short: "Show worker agent states",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			fleet, err := client.GetFleet()
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(fleet.Agents))
			for id := range fleet.Agents {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			rows := make([][]string, len(ids))
			for i, id := range ids {
				rows[i] = []string{id, fleet.Agents[id]}
			}

			out.Print([]string{"AGENT", "STATE"}, rows, fleet)
			return nil
		},
	}
}
