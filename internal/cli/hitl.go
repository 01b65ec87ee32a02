package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewEscalationCmd создаёт группу команд для разбора эскалаций.
func NewEscalationCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escalation",
		Short: "Review escalated results",
	}

	cmd.AddCommand(
		newEscalationListCmd(clientFn, outputFn),
		newEscalationApproveCmd(clientFn, outputFn),
		newEscalationRejectCmd(clientFn, outputFn),
	)

	return cmd
}

func newEscalationListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending escalations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			escalations, err := client.ListEscalations()
			if err != nil {
				return err
			}

			headers := []string{"WORK_ITEM", "CAMPAIGN", "WORKER", "CONFIDENCE", "TIMESTAMP"}
			rows := make([][]string, len(escalations))
			for i, e := range escalations {
				rows[i] = []string{
					e.WorkItemID,
					e.CampaignID,
					e.WorkerID,
					strconv.FormatFloat(e.Confidence, 'f', 2, 64),
					e.Timestamp,
				}
			}

			out.Print(headers, rows, escalations)
			return nil
		},
	}
}

func newEscalationApproveCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "approve WORK_ITEM_ID",
		Short: "Approve an escalated result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.ApproveEscalation(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Escalation approved: %s", args[0]))
			return nil
		},
	}
}

func newEscalationRejectCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "reject WORK_ITEM_ID",
		Short: "Reject an escalated result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.RejectEscalation(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Escalation rejected: %s", args[0]))
			return nil
		},
	}
}
