package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"callsheet/internal/api"
	"callsheet/internal/ipc"
)

func newPriceCommand(ctx *commandContext) *cobra.Command {
	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Quote deliverables and shoot days without saving them",
	}

	priceCmd.AddCommand(newPriceDeliverableCommand(ctx))
	priceCmd.AddCommand(newPriceShootCommand(ctx))

	return priceCmd
}

func newPriceDeliverableCommand(ctx *commandContext) *cobra.Command {
	var (
		input   api.DeliverableInput
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "deliverable",
		Short: "Quote a single video deliverable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				quote, err := client.PriceDeliverable(input)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, quote)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Bracket: %s\n", quote.Bracket)
				fmt.Fprintf(out, "Price:   %s\n", money(quote.Currency, quote.Cost))
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&input.VideoLengthSeconds, "length", 0, "Video length in seconds")
	flags.StringVar(&input.EditType, "edit", "basic", "Edit type: basic, advanced, or colour_only")
	flags.StringVar(&input.ColourGrading, "colour", "none", "Colour grading: none, standard, or advanced")
	flags.StringVar(&input.Subtitles, "subtitles", "none", "Subtitles: none, basic, or styled")
	flags.IntVar(&input.AdditionalFormats, "formats", 0, "Number of additional delivery formats")
	flags.BoolVar(&input.CustomMusic, "music", false, "Include custom music")
	flags.StringVar(&input.CustomMusicCost, "music-cost", "", "Custom music cost")
	flags.BoolVar(&input.CustomGraphics, "graphics", false, "Include custom graphics")
	flags.StringVar(&input.CustomGraphicsCost, "graphics-cost", "", "Custom graphics cost")
	flags.StringVar(&input.Rush, "rush", "none", "Rush level: none, standard, or emergency")
	flags.BoolVar(&jsonOut, "json", false, "Emit the quote as JSON")
	_ = cmd.MarkFlagRequired("length")

	return cmd
}

func newPriceShootCommand(ctx *commandContext) *cobra.Command {
	var (
		input   api.ShootInput
		extras  []string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "shoot",
		Short: "Quote a shoot day",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseEquipmentFlags(extras)
			if err != nil {
				return err
			}
			input.ExtraEquipment = parsed

			return ctx.withClient(func(client *ipc.Client) error {
				quote, err := client.PriceShoot(input)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, quote)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Price: %s\n", money(quote.Currency, quote.Cost))
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Type, "type", "", "Shoot type (e.g. event, interview)")
	flags.StringVar(&input.CameraBody, "camera", "", "Camera body rate key")
	flags.BoolVar(&input.SecondShooter.Enabled, "second-shooter", false, "Include a second shooter")
	flags.StringVar(&input.SecondShooter.Day, "second-shooter-day", "", "Second shooter day kind: full or half")
	flags.BoolVar(&input.SoundKit.Enabled, "sound", false, "Include the sound kit")
	flags.StringVar(&input.SoundKit.Day, "sound-day", "", "Sound kit day kind: full or half")
	flags.BoolVar(&input.Lighting.Enabled, "lighting", false, "Include the lighting kit")
	flags.StringVar(&input.Lighting.Day, "lighting-day", "", "Lighting day kind: full or half")
	flags.BoolVar(&input.Gimbal.Enabled, "gimbal", false, "Include the gimbal")
	flags.StringVar(&input.Gimbal.Day, "gimbal-day", "", "Gimbal day kind: full or half")
	flags.StringArrayVar(&extras, "equipment", nil, "Extra equipment as name=cost (repeatable)")
	flags.StringVar(&input.Travel, "travel", "none", "Travel method: none, driving, or flying")
	flags.StringVar(&input.Location, "location", "", "Shoot location label")
	flags.Float64Var(&input.DistanceKm, "distance", 0, "One-way driving distance in kilometres")
	flags.StringVar(&input.AirfareCost, "airfare", "", "Airfare cost when flying")
	flags.IntVar(&input.AccommodationNights, "nights", 0, "Accommodation nights")
	flags.StringVar(&input.AccommodationPerNight, "per-night", "", "Accommodation cost per night")
	flags.BoolVar(&jsonOut, "json", false, "Emit the quote as JSON")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func parseEquipmentFlags(entries []string) ([]api.EquipmentInput, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	items := make([]api.EquipmentInput, 0, len(entries))
	for _, entry := range entries {
		name, cost, found := strings.Cut(entry, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid equipment entry %q (expected name=cost)", entry)
		}
		items = append(items, api.EquipmentInput{Name: name, Cost: cost})
	}
	return items, nil
}
