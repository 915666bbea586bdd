package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"callsheet/internal/ipc"
	"callsheet/internal/store"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage client projects",
	}

	var listClientID int64
	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally for one client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				projects, err := client.ProjectList(listClientID)
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, projects)
				}
				if len(projects) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects found")
					return nil
				}
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					folder := p.DriveFolderID
					if folder == "" {
						folder = "-"
					}
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						strconv.FormatInt(p.ClientID, 10),
						p.Name,
						string(p.Status),
						truncate(folder, 28),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Client", "Name", "Status", "Drive Folder"}, rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft}))
				return nil
			})
		},
	}
	listCmd.Flags().Int64Var(&listClientID, "client", 0, "Only projects for this client id")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit projects as JSON")

	var record store.Project
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record.Name = args[0]
			return ctx.withClient(func(client *ipc.Client) error {
				saved, err := client.ProjectSave(record)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %d (%s)\n", saved.ID, saved.Name)
				return nil
			})
		},
	}
	addCmd.Flags().Int64Var(&record.ClientID, "client", 0, "Owning client id")
	addCmd.Flags().StringVar((*string)(&record.Status), "status", "", "Project status: active, delivered, or archived")
	addCmd.Flags().StringVar(&record.DriveFolderID, "folder", "", "Drive folder id for uploads")
	_ = addCmd.MarkFlagRequired("client")

	var statusValue string
	statusCmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Update a project's lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			statusValue = args[1]
			return ctx.withClient(func(client *ipc.Client) error {
				projects, err := client.ProjectList(0)
				if err != nil {
					return err
				}
				for _, p := range projects {
					if p.ID != id {
						continue
					}
					p.Status = store.ProjectStatus(statusValue)
					if _, err := client.ProjectSave(p); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Project %d is now %s\n", id, statusValue)
					return nil
				}
				return fmt.Errorf("no project with id %d", id)
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.ProjectDelete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d\n", id)
				return nil
			})
		},
	}

	projectsCmd.AddCommand(listCmd, addCmd, statusCmd, deleteCmd)
	return projectsCmd
}
