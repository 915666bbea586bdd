package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"callsheet/internal/ipc"
	"callsheet/internal/uploads"
)

func newUploadsCommand(ctx *commandContext) *cobra.Command {
	uploadsCmd := &cobra.Command{
		Use:     "uploads",
		Aliases: []string{"upload"},
		Short:   "Submit and control Drive upload jobs",
	}

	var submit ipc.UploadSubmitRequest
	submitCmd := &cobra.Command{
		Use:   "submit <path>",
		Short: "Queue a file or folder for upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			submit.Path = args[0]
			return ctx.withClient(func(client *ipc.Client) error {
				view, err := client.UploadSubmit(submit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued job %s (%d files)\n", view.ID, view.TotalFiles)
				return nil
			})
		},
	}
	submitCmd.Flags().Int64Var(&submit.ProjectID, "project", 0, "Project whose Drive folder receives the files")
	submitCmd.Flags().StringVar(&submit.FolderID, "folder", "", "Destination folder id (overrides the project folder)")
	submitCmd.Flags().BoolVar(&submit.FolderUpload, "keep-structure", false, "Recreate the local directory structure remotely")

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List upload jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				jobs, err := client.UploadList()
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, jobs)
				}
				if len(jobs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No upload jobs")
					return nil
				}
				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						shortJobID(job.ID),
						string(job.Status),
						jobLabel(job),
						fmt.Sprintf("%d/%d", job.CurrentIndex, job.TotalFiles),
						strconv.Itoa(job.SuccessCount),
						strconv.Itoa(job.SkipCount),
						strconv.Itoa(job.ErrorCount),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Job", "Status", "Destination", "Progress", "OK", "Skipped", "Errors"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}))
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit jobs as JSON")

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show <job>",
		Short: "Show one upload job in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				job, err := resolveJob(client, args[0])
				if err != nil {
					return err
				}
				if showJSON {
					return writeJSON(cmd, job)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Job %s\n", job.ID)
				fmt.Fprintf(out, "  Status:      %s\n", job.Status)
				fmt.Fprintf(out, "  Destination: %s\n", jobLabel(job))
				fmt.Fprintf(out, "  Progress:    %d/%d (ok %d, skipped %d, errors %d)\n",
					job.CurrentIndex, job.TotalFiles, job.SuccessCount, job.SkipCount, job.ErrorCount)
				if job.CurrentFile != "" {
					fmt.Fprintf(out, "  Uploading:   %s\n", job.CurrentFile)
				}
				if job.Status == uploads.StatusNeedsResolution && len(job.ConflictingFiles) > 0 {
					fmt.Fprintf(out, "  Conflicts:   %s\n", strings.Join(job.ConflictingFiles, ", "))
					fmt.Fprintln(out, "  Resolve with `callsheet uploads resolve --bulk <job> <overwrite|rename|skip>`")
				}
				if job.Status == uploads.StatusConflict && job.ConflictFile != "" {
					fmt.Fprintf(out, "  Conflict:    %s\n", job.ConflictFile)
					fmt.Fprintln(out, "  Resolve with `callsheet uploads resolve <job> <overwrite|rename|skip>`")
				}
				return nil
			})
		},
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Emit the job as JSON")

	action := func(use, short, done string, call func(*ipc.Client, string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <job>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withClient(func(client *ipc.Client) error {
					job, err := resolveJob(client, args[0])
					if err != nil {
						return err
					}
					if err := call(client, job.ID); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), done+"\n", shortJobID(job.ID))
					return nil
				})
			},
		}
	}

	pauseCmd := action("pause", "Pause the actively uploading job", "Paused job %s",
		func(c *ipc.Client, id string) error { return c.UploadPause(id) })
	resumeCmd := action("resume", "Resume a paused job at the back of the queue", "Resumed job %s",
		func(c *ipc.Client, id string) error { return c.UploadResume(id) })
	dismissCmd := action("dismiss", "Remove a job from the pool", "Dismissed job %s",
		func(c *ipc.Client, id string) error { return c.UploadDismiss(id) })

	var resolveBulk bool
	resolveCmd := &cobra.Command{
		Use:   "resolve <job> <overwrite|rename|skip>",
		Short: "Answer a pending conflict",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				job, err := resolveJob(client, args[0])
				if err != nil {
					return err
				}
				if err := client.UploadResolve(job.ID, args[1], resolveBulk); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %s to job %s\n", args[1], shortJobID(job.ID))
				return nil
			})
		},
	}
	resolveCmd.Flags().BoolVar(&resolveBulk, "bulk", false, "Answer the pre-transfer conflict check instead of a per-file conflict")

	uploadsCmd.AddCommand(submitCmd, listCmd, showCmd, pauseCmd, resumeCmd, dismissCmd, resolveCmd)
	return uploadsCmd
}

// resolveJob accepts a full job id or an unambiguous prefix.
func resolveJob(client *ipc.Client, arg string) (uploads.View, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return uploads.View{}, fmt.Errorf("job id is required")
	}
	if view, err := client.UploadDescribe(arg); err == nil {
		return view, nil
	}
	jobs, err := client.UploadList()
	if err != nil {
		return uploads.View{}, err
	}
	var matches []uploads.View
	for _, job := range jobs {
		if strings.HasPrefix(job.ID, arg) {
			matches = append(matches, job)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return uploads.View{}, fmt.Errorf("no upload job matches %q", arg)
	default:
		return uploads.View{}, fmt.Errorf("job prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortJobID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func jobLabel(job uploads.View) string {
	if job.FolderLabel != "" {
		return job.FolderLabel
	}
	return truncate(job.FolderID, 28)
}
