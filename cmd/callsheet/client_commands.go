package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"callsheet/internal/ipc"
	"callsheet/internal/store"
)

func newClientsCommand(ctx *commandContext) *cobra.Command {
	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage studio clients",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				clients, err := client.ClientList()
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, clients)
				}
				if len(clients) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No clients yet")
					return nil
				}
				rows := make([][]string, 0, len(clients))
				for _, c := range clients {
					rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Company, c.Email})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Company", "Email"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit clients as JSON")

	var record store.Client
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record.Name = args[0]
			return ctx.withClient(func(client *ipc.Client) error {
				saved, err := client.ClientSave(record)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created client %d (%s)\n", saved.ID, saved.Name)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&record.Company, "company", "", "Company name")
	addCmd.Flags().StringVar(&record.Email, "email", "", "Contact email")
	addCmd.Flags().StringVar(&record.Phone, "phone", "", "Contact phone")
	addCmd.Flags().StringVar(&record.Notes, "notes", "", "Free-form notes")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client and its projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.ClientDelete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted client %d\n", id)
				return nil
			})
		},
	}

	clientsCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return clientsCmd
}
