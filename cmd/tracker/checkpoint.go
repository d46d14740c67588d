package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/storage"
)

func checkpointCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage database checkpoints",
		Long: `Create, list, restore, and delete database checkpoints.

Checkpoints are full copies of the database stored in a checkpoints
directory next to it. Take one before a large import and restore it if
the import goes wrong.`,
		Example: `  tracker checkpoint create pre-2024-import
  tracker checkpoint list
  tracker checkpoint restore pre-2024-import
  tracker checkpoint delete pre-2024-import`,
	}

	cmd.AddCommand(createCheckpointCmd(a))
	cmd.AddCommand(listCheckpointsCmd(a))
	cmd.AddCommand(restoreCheckpointCmd(a))
	cmd.AddCommand(deleteCheckpointCmd(a))

	return cmd
}

// withCheckpoints opens the database and hands fn its checkpoint manager.
func (a *app) withCheckpoints(cmd *cobra.Command, fn func(*storage.CheckpointManager) error) error {
	return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
		manager, err := store.NewCheckpointManager()
		if err != nil {
			return fmt.Errorf("failed to create checkpoint manager: %w", err)
		}
		return fn(manager)
	})
}

func createCheckpointCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create [tag]",
		Short: "Create a new checkpoint",
		Long:  `Snapshot the current database. Without a tag one is generated from the current time.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tag string
			if len(args) == 1 {
				tag = args[0]
			}

			return a.withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				info, err := manager.Create(cmd.Context(), tag, description)
				if err != nil {
					return fmt.Errorf("failed to create checkpoint: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("created checkpoint %s (%s)",
					cli.InfoStyle.Render(info.ID), formatFileSize(info.FileSize))))
				if info.Description != "" {
					fmt.Fprintf(out, "  description: %s\n", info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the checkpoint")

	return cmd
}

func listCheckpointsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checkpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				checkpoints, err := manager.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(checkpoints) == 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render("no checkpoints found"))
					return nil
				}

				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%d checkpoints", len(checkpoints))))
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tCREATED\tSIZE\tTRANSACTIONS\tCATEGORIES\tDESCRIPTION")
				for _, cp := range checkpoints {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
						cp.ID,
						formatRelativeTime(cp.CreatedAt),
						formatFileSize(cp.FileSize),
						cp.Transactions,
						cp.Categories,
						cp.Description,
					)
				}
				return w.Flush()
			})
		},
	}
}

func restoreCheckpointCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <tag>",
		Short: "Restore the database from a checkpoint",
		Long:  `Replace the current database with a checkpoint. Unsaved state since the checkpoint is lost.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()

			if !force && !confirm(cmd.InOrStdin(), out,
				fmt.Sprintf("replace the current database with checkpoint %s?", id)) {
				fmt.Fprintln(out, cli.SubtleStyle.Render("restore cancelled"))
				return nil
			}

			// Restore closes the live connection, so the deferred Close in withCheckpoints is a no-op.
			err := a.withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				return manager.Restore(cmd.Context(), id)
			})
			if err != nil {
				return fmt.Errorf("failed to restore checkpoint: %w", err)
			}

			return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
				transactions, err := store.GetTransactions(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("restored checkpoint %s (%d transactions)", id, len(transactions))))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func deleteCheckpointCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <tag>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()

			if !force && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("permanently delete checkpoint %s?", id)) {
				fmt.Fprintln(out, cli.SubtleStyle.Render("deletion cancelled"))
				return nil
			}

			return a.withCheckpoints(cmd, func(manager *storage.CheckpointManager) error {
				if err := manager.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete checkpoint: %w", err)
				}
				fmt.Fprintln(out, cli.FormatSuccess("deleted checkpoint "+id))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s %s (y/N) ", cli.WarningIcon, question)

	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

func formatRelativeTime(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02 15:04")
	}
}
