package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"callsheet/internal/config"
	"callsheet/internal/ipc"
)

func newRatesCommand(ctx *commandContext) *cobra.Command {
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage the pricing rate table",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all rate entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				rates, err := client.RateList()
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, rates)
				}
				if len(rates) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Rate table is empty")
					return nil
				}
				keys := make([]string, 0, len(rates))
				for key := range rates {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				rows := make([][]string, 0, len(keys))
				for _, key := range keys {
					rows = append(rows, []string{key, strconv.FormatFloat(rates[key], 'f', -1, 64)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit rates as JSON")

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Create or update a rate entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.RateSet(args[0], value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", args[0], value)
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a rate entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.RateDelete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load rate entries from a TOML file of key = value pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read rates file: %w", err)
			}
			var rates map[string]float64
			if err := toml.Unmarshal(data, &rates); err != nil {
				return fmt.Errorf("parse rates file: %w", err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				keys := make([]string, 0, len(rates))
				for key := range rates {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					if err := client.RateSet(key, rates[key]); err != nil {
						return fmt.Errorf("set %s: %w", key, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rate entries from %s\n", len(rates), path)
				return nil
			})
		},
	}

	ratesCmd.AddCommand(listCmd, setCmd, deleteCmd, importCmd)
	return ratesCmd
}
