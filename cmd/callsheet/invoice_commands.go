package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"callsheet/internal/ipc"
)

func newInvoicesCommand(ctx *commandContext) *cobra.Command {
	invoicesCmd := &cobra.Command{
		Use:   "invoices",
		Short: "Generate and inspect project invoices",
	}

	var generateProjectID int64
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Issue an invoice from a project's current deliverables and shoots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				invoice, err := client.InvoiceGenerate(generateProjectID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Issued %s for %s\n",
					invoice.Number, money(invoice.Currency, invoice.Total))
				return nil
			})
		},
	}
	generateCmd.Flags().Int64Var(&generateProjectID, "project", 0, "Project id")
	_ = generateCmd.MarkFlagRequired("project")

	var listProjectID int64
	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				invoices, err := client.InvoiceList(listProjectID)
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, invoices)
				}
				if len(invoices) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No invoices found")
					return nil
				}
				rows := make([][]string, 0, len(invoices))
				for _, inv := range invoices {
					rows = append(rows, []string{
						strconv.FormatInt(inv.ID, 10),
						inv.Number,
						inv.IssuedAt.Format("2006-01-02"),
						money(inv.Currency, inv.Total),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Number", "Issued", "Total"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}
	listCmd.Flags().Int64Var(&listProjectID, "project", 0, "Project id")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit invoices as JSON")
	_ = listCmd.MarkFlagRequired("project")

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one invoice with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				invoice, err := client.InvoiceShow(id)
				if err != nil {
					return err
				}
				if showJSON {
					return writeJSON(cmd, invoice)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (project %d), issued %s\n",
					invoice.Number, invoice.ProjectID, invoice.IssuedAt.Format("2006-01-02"))
				rows := make([][]string, 0, len(invoice.Lines)+1)
				for _, line := range invoice.Lines {
					rows = append(rows, []string{
						string(line.Kind),
						truncate(line.Description, 40),
						money(invoice.Currency, line.Amount),
					})
				}
				rows = append(rows, []string{"", "Total", money(invoice.Currency, invoice.Total)})
				fmt.Fprintln(out, renderTable(
					[]string{"Kind", "Description", "Amount"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Emit the invoice as JSON")

	invoicesCmd.AddCommand(generateCmd, listCmd, showCmd)
	return invoicesCmd
}
