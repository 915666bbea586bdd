package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"callsheet/internal/ipc"
	"callsheet/internal/pricing"
	"callsheet/internal/store"
)

func newShootsCommand(ctx *commandContext) *cobra.Command {
	shootsCmd := &cobra.Command{
		Use:   "shoots",
		Short: "Manage shoot days",
	}

	var listProjectID int64
	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List shoot days for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				shoots, err := client.ShootList(listProjectID)
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, shoots)
				}
				if len(shoots) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No shoots found")
					return nil
				}
				cfg := ctx.configValue()
				currency := "USD"
				if cfg != nil {
					currency = cfg.Studio.Currency
				}
				rows := make([][]string, 0, len(shoots))
				for _, sh := range shoots {
					label := sh.Label
					if label == "" {
						label = "-"
					}
					rows = append(rows, []string{
						strconv.FormatInt(sh.ID, 10),
						truncate(label, 32),
						string(sh.Type),
						string(sh.Travel),
						money(currency, sh.Cost),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Label", "Type", "Travel", "Price"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}
	listCmd.Flags().Int64Var(&listProjectID, "project", 0, "Project id")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit shoots as JSON")
	_ = listCmd.MarkFlagRequired("project")

	var record store.Shoot
	var extras []string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a shoot day (its price is computed on save)",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseEquipmentFlags(extras)
			if err != nil {
				return err
			}
			for _, item := range parsed {
				record.ExtraEquipment = append(record.ExtraEquipment, pricing.EquipmentItem{
					Name: item.Name,
					Cost: pricing.Amount(item.Cost),
				})
			}
			return ctx.withClient(func(client *ipc.Client) error {
				saved, err := client.ShootSave(record)
				if err != nil {
					return err
				}
				cfg := ctx.configValue()
				currency := "USD"
				if cfg != nil {
					currency = cfg.Studio.Currency
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created shoot %d (%s)\n", saved.ID, money(currency, saved.Cost))
				return nil
			})
		},
	}
	flags := addCmd.Flags()
	flags.Int64Var(&record.ProjectID, "project", 0, "Owning project id")
	flags.StringVar(&record.Label, "label", "", "Shoot label")
	flags.StringVar((*string)(&record.Type), "type", "", "Shoot type (e.g. event, interview)")
	flags.StringVar(&record.CameraBody, "camera", "", "Camera body rate key")
	flags.BoolVar(&record.SecondShooter.Enabled, "second-shooter", false, "Include a second shooter")
	flags.StringVar((*string)(&record.SecondShooter.Day), "second-shooter-day", "", "Second shooter day kind: full or half")
	flags.BoolVar(&record.SoundKit.Enabled, "sound", false, "Include the sound kit")
	flags.StringVar((*string)(&record.SoundKit.Day), "sound-day", "", "Sound kit day kind: full or half")
	flags.BoolVar(&record.Lighting.Enabled, "lighting", false, "Include the lighting kit")
	flags.StringVar((*string)(&record.Lighting.Day), "lighting-day", "", "Lighting day kind: full or half")
	flags.BoolVar(&record.Gimbal.Enabled, "gimbal", false, "Include the gimbal")
	flags.StringVar((*string)(&record.Gimbal.Day), "gimbal-day", "", "Gimbal day kind: full or half")
	flags.StringArrayVar(&extras, "equipment", nil, "Extra equipment as name=cost (repeatable)")
	flags.StringVar((*string)(&record.Travel), "travel", string(pricing.TravelNone), "Travel method: none, driving, or flying")
	flags.StringVar(&record.Location, "location", "", "Shoot location label")
	flags.Float64Var(&record.DistanceKm, "distance", 0, "One-way driving distance in kilometres")
	flags.Float64Var(&record.AirfareCost, "airfare", 0, "Airfare cost when flying")
	flags.IntVar(&record.AccommodationNights, "nights", 0, "Accommodation nights")
	flags.Float64Var(&record.AccommodationPerNight, "per-night", 0, "Accommodation cost per night")
	_ = addCmd.MarkFlagRequired("project")
	_ = addCmd.MarkFlagRequired("type")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shoot day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.ShootDelete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted shoot %d\n", id)
				return nil
			})
		},
	}

	shootsCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return shootsCmd
}
