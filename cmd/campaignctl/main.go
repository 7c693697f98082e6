package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mesa-campaigns/internal/client"
	"mesa-campaigns/internal/core/domain"
)

var rootCmd = &cobra.Command{
	Use:   "campaignctl",
	Short: "Operate A/B email campaigns",
	Long: `campaignctl drives campaigns on a running campaign service.
A campaign is started from a brief, runs until its variants are ready and then
waits. Each variant is dispatched separately; once every variant is sent the
campaign is finalized and the report names the winner.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("CAMPAIGNCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "campaign service base URL")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Duration("timeout", 2*time.Minute, "request timeout")
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

func registerCommands() {
	rootCmd.AddCommand(startCmd(), listCmd(), showCmd(), dispatchCmd(), retryCmd(), finalizeCmd(), reportCmd())
}

func newClient() *client.Client {
	c := client.New(viper.GetString("server"))
	c.Timeout = viper.GetDuration("timeout")
	return c
}

func startCmd() *cobra.Command {
	var req client.StartRequest
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a campaign from a brief",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Brief == "" {
				return errors.New("--brief is required")
			}
			return printCampaign(newClient().Start(cmd.Context(), req))
		},
	}
	cmd.Flags().StringVar(&req.Brief, "brief", "", "marketing brief")
	cmd.Flags().StringVar(&req.AudienceRef, "audience", "", "audience reference (defaults to the service's audience)")
	cmd.Flags().IntVar(&req.Variants, "variants", 0, "number of variants, 1 to 3")
	return cmd
}

func listCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := newClient().List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(list)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Stage", "Variants", "Audience", "Winner", "Updated"})
			for _, c := range list {
				tw.AppendRow(table.Row{c.ID, c.Stage, c.Variants, c.Audience, c.Winner, c.UpdatedAt.Format(time.RFC3339)})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of campaigns")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign-id>",
		Short: "Show a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCampaign(newClient().Get(cmd.Context(), args[0]))
		},
	}
}

func dispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <campaign-id> <variant>",
		Short: "Send one variant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, ok := domain.ParseLabel(strings.ToUpper(args[1]))
			if !ok {
				return fmt.Errorf("unknown variant %q", args[1])
			}
			return printCampaign(newClient().Dispatch(cmd.Context(), args[0], label))
		},
	}
}

func retryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <campaign-id>",
		Short: "Retry the failed step of a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCampaign(newClient().Retry(cmd.Context(), args[0]))
		},
	}
}

func finalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <campaign-id>",
		Short: "Reconcile metrics and build the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCampaign(newClient().Finalize(cmd.Context(), args[0]))
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <campaign-id>",
		Short: "Print the report of a finalized campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newClient().Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(report)
			}
			printReport(report)
			return nil
		},
	}
}

// printCampaign renders c, or the campaign attached to an API error
// followed by the error itself.
func printCampaign(c client.Campaign, err error) error {
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Campaign != nil {
			c = *apiErr.Campaign
		} else {
			return err
		}
	}
	if viper.GetBool("json") {
		if perr := printJSON(c); perr != nil {
			return perr
		}
		return err
	}

	fmt.Printf("Campaign %s\nStage:    %s\n", c.ID, c.Stage)
	if c.Winner != "" {
		fmt.Printf("Winner:   %s\n", c.Winner)
	}
	if c.Error != nil {
		fmt.Printf("Error:    %s step: %s\n", c.Error.Step, c.Error.Message)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Variant", "Recipients", "Subject", "Deliverability", "Sent", "Succeeded", "Failed"})
	for _, l := range domain.Labels {
		v, ok := c.Groups[l]
		if !ok {
			continue
		}
		subject, check := "", ""
		if v.Content != nil {
			subject = v.Content.Subject
		}
		if v.Deliverability != nil {
			check = fmt.Sprintf("%d (%s)", v.Deliverability.Score, v.Deliverability.Spam.RiskLevel)
		}
		tw.AppendRow(table.Row{l, v.Recipients, subject, check, v.Sent, v.Succeeded, v.Failed})
	}
	tw.Render()
	return err
}

func printReport(r domain.Report) {
	fmt.Printf("Report for %s (primary metric %s)\n", r.CampaignID, r.PrimaryMetric)
	if r.Winner != "" {
		fmt.Printf("Winner: variant %s\n", r.Winner)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Variant", "Sent", "Opened", "Clicked", "Converted", "Open %", "Click %", "CTR %"})
	for _, l := range domain.Labels {
		p, ok := r.Performance[l]
		if !ok {
			continue
		}
		tw.AppendRow(table.Row{l, p.Sent, p.Opened, p.Clicked, p.Converted, p.OpenRate, p.ClickRate, p.ClickThroughRate})
	}
	tw.Render()

	for _, section := range []struct {
		title string
		lines []string
	}{
		{"Insights", r.Insights},
		{"Recommendations", r.Recommendations},
		{"Next steps", r.NextSteps},
	} {
		if len(section.lines) == 0 {
			continue
		}
		fmt.Printf("\n%s:\n", section.title)
		for _, l := range section.lines {
			fmt.Printf("  - %s\n", l)
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

