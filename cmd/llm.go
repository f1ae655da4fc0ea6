package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/llm"
	"github.com/abhisek/eternalquest/internal/store"
	"github.com/abhisek/eternalquest/internal/suggest"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Model", WidthMax: 28},
		})
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			t.AppendRow(table.Row{
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			})
		}
		t.Render()
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		meta := table.NewWriter()
		meta.SetOutputMirror(out)
		meta.SetStyle(table.StyleLight)
		meta.AppendRows([]table.Row{
			{"ID", e.ID},
			{"Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", e.Success},
		})
		if e.ErrorMessage != "" {
			meta.AppendRow(table.Row{"Error", e.ErrorMessage})
		}
		meta.Render()

		sep := strings.Repeat("─", 60)
		for _, part := range []struct{ title, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, part.title)
			fmt.Fprintln(out, sep)
			if part.body == "" {
				fmt.Fprintln(out, "(not captured)")
				continue
			}
			fmt.Fprintln(out, part.body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		stats, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		usage := table.NewWriter()
		usage.SetOutputMirror(out)
		usage.SetStyle(table.StyleLight)
		usage.SetTitle("Usage by Purpose")
		usage.AppendHeader(table.Row{"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms"})
		var totalCalls, totalIn, totalOut int
		for _, st := range stats {
			usage.AppendRow(table.Row{st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.InputTokens + st.OutputTokens, st.AvgLatencyMs})
			totalCalls += st.Calls
			totalIn += st.InputTokens
			totalOut += st.OutputTokens
		}
		usage.AppendFooter(table.Row{"Total", totalCalls, totalIn, totalOut, totalIn + totalOut, ""})
		usage.Render()

		modelUsage, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(modelUsage) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		cost := table.NewWriter()
		cost.SetOutputMirror(out)
		cost.SetStyle(table.StyleLight)
		cost.SetTitle("Estimated Cost (USD)")
		cost.AppendHeader(table.Row{"Model", "Calls", "Input", "Output", "Cost"})
		cost.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Model", WidthMax: 32},
			{Name: "Cost", Align: text.AlignRight, AlignFooter: text.AlignRight},
		})

		var totalCost float64
		var unknown []string
		for _, mu := range modelUsage {
			price := llm.LookupCost(mu.Model)
			if price == nil {
				unknown = append(unknown, mu.Model)
				cost.AppendRow(table.Row{mu.Model, mu.Calls, mu.InputTokens, mu.OutputTokens, "?"})
				continue
			}
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			totalCost += c
			cost.AppendRow(table.Row{mu.Model, mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c)})
		}
		label := "Total"
		if len(unknown) > 0 {
			label = "Total (partial)"
		}
		cost.AppendFooter(table.Row{label, "", "", "", formatCost(totalCost)})
		cost.Render()

		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "filter by purpose (e.g. "+suggest.Purpose+")")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
