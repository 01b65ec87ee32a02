package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewCampaignCmd создаёт группу команд для управления кампаниями.
func NewCampaignCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}

	cmd.AddCommand(
		newCampaignListCmd(clientFn, outputFn),
		newCampaignStartCmd(clientFn, outputFn),
		newCampaignShowCmd(clientFn, outputFn),
		newCampaignVerdictsCmd(clientFn, outputFn),
	)

	return cmd
}

func campaignRow(c CampaignResponse) []string {
	return []string{
		c.ID,
		c.Goal,
		c.Status,
		strconv.Itoa(c.Approved),
		strconv.Itoa(c.Rejected),
		c.CreatedAt,
	}
}

var campaignHeaders = []string{"ID", "GOAL", "STATUS", "APPROVED", "REJECTED", "CREATED"}

func newCampaignListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			campaigns, err := client.ListCampaigns()
			if err != nil {
				return err
			}

			rows := make([][]string, len(campaigns))
			for i, c := range campaigns {
				rows[i] = campaignRow(c)
			}

			out.Print(campaignHeaders, rows, campaigns)
			return nil
		},
	}
}

func newCampaignStartCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var goal string
	var id string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			campaign, err := client.StartCampaign(id, goal)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Campaign started: %s", campaign.ID))
			out.Print(campaignHeaders, [][]string{campaignRow(*campaign)}, campaign)
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Campaign goal (required)")
	cmd.Flags().StringVar(&id, "id", "", "Campaign ID (generated if empty)")
	cmd.MarkFlagRequired("goal")

	return cmd
}

func newCampaignShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show campaign details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			campaign, err := client.GetCampaign(args[0])
			if err != nil {
				return err
			}

			out.Print(campaignHeaders, [][]string{campaignRow(*campaign)}, campaign)
			return nil
		},
	}
}

func newCampaignVerdictsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "verdicts CAMPAIGN_ID",
		Short: "Show campaign verdict audit log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			verdicts, err := client.ListVerdicts(args[0])
			if err != nil {
				return err
			}

			headers := []string{"WORK_ITEM", "WORKER", "VERDICT", "CONFIDENCE", "REASON", "RECORDED"}
			rows := make([][]string, len(verdicts))
			for i, v := range verdicts {
				rows[i] = []string{
					v.WorkItemID,
					v.WorkerID,
					v.Verdict,
					strconv.FormatFloat(v.Confidence, 'f', 2, 64),
					v.Reason,
					v.RecordedAt,
				}
			}

			out.Print(headers, rows, verdicts)
			return nil
		},
	}
}
