// taskctl is a small terminal client for the task service. It drives the
// same client package a browser UI would: every mutation round-trips through
// the server and is folded into local state via the reducer.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"taskboard/client"
	"taskboard/domain/dto"
)

var serverURL string

func main() {
	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Manage tasks on a taskboard server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3001", "base URL of the task service")

	root.AddCommand(listCmd(), addCmd(), doneCmd(), rmCmd(), editCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	var sortBy, priority, due, tags string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := client.NewAPI(serverURL)
			tasks, err := api.ListTasks(client.ListQuery{
				SortBy:           sortBy,
				FilterByPriority: priority,
				FilterByDate:     due,
				Tags:             tags,
			})
			if err != nil {
				return err
			}

			state := client.Apply(client.State{}, client.ListFetched{Tasks: tasks})
			render(cmd, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", "sort order: priority or dueDate")
	cmd.Flags().StringVar(&priority, "priority", "", "only tasks with this priority")
	cmd.Flags().StringVar(&due, "due", "", "only tasks due at this RFC 3339 instant")
	cmd.Flags().StringVar(&tags, "tags", "", "only tasks carrying all of these comma-separated tags")
	return cmd
}

func addCmd() *cobra.Command {
	var title, due, tags string
	var priority int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate the date locally; a bad date never hits the network.
			dueTime, err := client.ParseDueDate(due)
			if err != nil {
				return err
			}

			api := client.NewAPI(serverURL)
			task, err := api.CreateTask(&dto.CreateTaskRequest{
				Title:    title,
				DueDate:  dueTime.Format(time.RFC3339),
				Priority: &priority,
				Tags:     client.SplitTags(tags),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&due, "due", "", "due date (yyyy-mm-dd or RFC 3339)")
	cmd.Flags().IntVar(&priority, "priority", 1, "priority (lower sorts first)")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			api := client.NewAPI(serverURL)
			task, err := api.CompleteTask(id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "completed %s\n", task.ID)
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			api := client.NewAPI(serverURL)
			if err := api.DeleteTask(id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var title, due, tags string
	var priority int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			api := client.NewAPI(serverURL)
			tasks, err := api.ListTasks(client.ListQuery{})
			if err != nil {
				return err
			}

			state := client.Apply(client.State{}, client.ListFetched{Tasks: tasks})
			var target *dto.TaskResponse
			for i := range state.Tasks {
				if state.Tasks[i].ID == id {
					target = &state.Tasks[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("no task with id %s", id)
			}

			// Snapshot into the edit buffer, then overlay whichever flags
			// were set.
			state = client.Apply(state, client.EditStarted{Task: *target})
			buf := state.Editing
			if cmd.Flags().Changed("title") {
				buf.Title = title
			}
			if cmd.Flags().Changed("due") {
				buf.DueDate = due
			}
			if cmd.Flags().Changed("priority") {
				buf.Priority = priority
			}
			if cmd.Flags().Changed("tags") {
				buf.Tags = tags
			}

			req, err := buf.ToReplaceRequest()
			if err != nil {
				return err
			}

			updated, err := api.ReplaceTask(id, req)
			if err != nil {
				return err
			}

			state = client.Apply(state, client.TaskUpserted{Task: *updated})
			render(cmd, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&due, "due", "", "new due date (yyyy-mm-dd or RFC 3339)")
	cmd.Flags().IntVar(&priority, "priority", 0, "new priority")
	cmd.Flags().StringVar(&tags, "tags", "", "new comma-separated tags")
	return cmd
}

func render(cmd *cobra.Command, state client.State) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDUE\tPRIORITY\tDONE\tTAGS")
	for _, t := range state.Tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			t.ID, t.Title, t.DueDate.Format(time.RFC3339), t.Priority, done, joinTags(t.Tags))
	}
	_ = w.Flush()
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ",")
}
