package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"callsheet/internal/ipc"
	"callsheet/internal/pricing"
	"callsheet/internal/store"
)

func newDeliverablesCommand(ctx *commandContext) *cobra.Command {
	deliverablesCmd := &cobra.Command{
		Use:   "deliverables",
		Short: "Manage project deliverables",
	}

	var listProjectID int64
	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List deliverables for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				deliverables, err := client.DeliverableList(listProjectID)
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, deliverables)
				}
				if len(deliverables) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No deliverables found")
					return nil
				}
				cfg := ctx.configValue()
				currency := "USD"
				if cfg != nil {
					currency = cfg.Studio.Currency
				}
				rows := make([][]string, 0, len(deliverables))
				for _, d := range deliverables {
					rows = append(rows, []string{
						strconv.FormatInt(d.ID, 10),
						truncate(d.Title, 32),
						fmt.Sprintf("%ds", d.VideoLengthSeconds),
						string(d.Bracket),
						string(d.EditType),
						string(d.Rush),
						money(currency, d.Cost),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Title", "Length", "Bracket", "Edit", "Rush", "Price"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}
	listCmd.Flags().Int64Var(&listProjectID, "project", 0, "Project id")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit deliverables as JSON")
	_ = listCmd.MarkFlagRequired("project")

	var record store.Deliverable
	var musicCost, graphicsCost float64
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a deliverable (its price is computed on save)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record.Title = args[0]
			record.CustomMusicCost = musicCost
			record.CustomGraphicsCost = graphicsCost
			return ctx.withClient(func(client *ipc.Client) error {
				saved, err := client.DeliverableSave(record)
				if err != nil {
					return err
				}
				cfg := ctx.configValue()
				currency := "USD"
				if cfg != nil {
					currency = cfg.Studio.Currency
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created deliverable %d (%s, bracket %s, %s)\n",
					saved.ID, saved.Title, saved.Bracket, money(currency, saved.Cost))
				return nil
			})
		},
	}
	flags := addCmd.Flags()
	flags.Int64Var(&record.ProjectID, "project", 0, "Owning project id")
	flags.IntVar(&record.VideoLengthSeconds, "length", 0, "Video length in seconds")
	flags.StringVar((*string)(&record.EditType), "edit", string(pricing.EditBasic), "Edit type: basic, advanced, or colour_only")
	flags.StringVar((*string)(&record.ColourGrading), "colour", string(pricing.ColourNone), "Colour grading: none, standard, or advanced")
	flags.StringVar((*string)(&record.Subtitles), "subtitles", string(pricing.SubtitlesNone), "Subtitles: none, basic, or styled")
	flags.IntVar(&record.AdditionalFormats, "formats", 0, "Number of additional delivery formats")
	flags.BoolVar(&record.CustomMusic, "music", false, "Include custom music")
	flags.Float64Var(&musicCost, "music-cost", 0, "Custom music cost")
	flags.BoolVar(&record.CustomGraphics, "graphics", false, "Include custom graphics")
	flags.Float64Var(&graphicsCost, "graphics-cost", 0, "Custom graphics cost")
	flags.StringVar((*string)(&record.Rush), "rush", string(pricing.RushNone), "Rush level: none, standard, or emergency")
	_ = addCmd.MarkFlagRequired("project")
	_ = addCmd.MarkFlagRequired("length")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a deliverable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.DeliverableDelete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted deliverable %d\n", id)
				return nil
			})
		},
	}

	deliverablesCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return deliverablesCmd
}
