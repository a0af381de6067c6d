package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ilias-scraper/lib/scrapers/ilias"
	"ilias-scraper/lib/scrapers/ilias/exercise"
)

func init() {
	assignmentCmd.AddCommand(showCmd)
	assignmentCmd.AddCommand(uploadCmd)
	assignmentCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(assignmentCmd)
}

var assignmentCmd = &cobra.Command{
	Use:   "assignment",
	Short: "Inspects and manages exercise assignments.",
}

const dateFormat = "2006-01-02 15:04"

var showCmd = &cobra.Command{
	Use:   "show <assignment id>",
	Short: "Shows an assignment's details and its submitted files.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := createClient(ctx)

		assignment, err := exercise.FetchAssignment(ctx, client, args[0])
		if err != nil {
			fatal("failed to fetch assignment", err)
		}

		fmt.Println(assignment.Name)
		fmt.Printf("submission window: %s until %s (active: %v)\n",
			assignment.SubmissionStart.Format(dateFormat),
			assignment.SubmissionEnd.Format(dateFormat),
			assignment.IsActive())

		if assignment.Instructions != "" {
			fmt.Println()
			fmt.Println(assignment.Instructions)
		}

		if len(assignment.Attachments) > 0 {
			fmt.Println()
			fmt.Println("attachments:")
			for _, file := range assignment.Attachments {
				fmt.Printf("  %s  %s\n", file.Name, file.Download)
			}
		}

		if assignment.Submission.State() == ilias.RefUnavailable {
			fmt.Println()
			fmt.Println("no submission page available")
			return
		}

		submission, err := assignment.ResolveSubmission(ctx, client)
		if err != nil {
			fatal("failed to fetch submission page", err)
		}

		fmt.Println()
		fmt.Println("submitted files:")
		for _, file := range submission.Files {
			fmt.Printf("  %s  (submitted %s)\n", file.Name, file.Date.Format(dateFormat))
		}
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <assignment id> <file>...",
	Short: "Uploads local files to an assignment in a single request.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := createClient(ctx)

		submission, err := fetchSubmission(ctx, client, args[0])
		if err != nil {
			fatal("failed to fetch submission page", err)
		}

		var files []ilias.NamedLocalFile
		for _, path := range args[1:] {
			files = append(files, ilias.NamedLocalFile{
				Name: filepath.Base(path),
				Path: path,
			})
		}

		err = submission.UploadFiles(ctx, client, files)
		if err != nil {
			fatal("failed to upload files", err)
		}
		fmt.Printf("uploaded %d file(s)\n", len(files))
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <assignment id>",
	Short: "Deletes every previously submitted file of an assignment.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := createClient(ctx)

		submission, err := fetchSubmission(ctx, client, args[0])
		if err != nil {
			fatal("failed to fetch submission page", err)
		}
		if len(submission.Files) == 0 {
			fmt.Println("nothing submitted, nothing to delete")
			return
		}

		err = submission.DeleteFiles(ctx, client, submission.Files)
		if err != nil {
			fatal("failed to delete files", err)
		}
		fmt.Printf("deleted %d file(s)\n", len(submission.Files))
	},
}

func fetchSubmission(ctx context.Context, tx ilias.Transport, id string) (*exercise.AssignmentSubmission, error) {
	assignment, err := exercise.FetchAssignment(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Submission.State() == ilias.RefUnavailable {
		return nil, fmt.Errorf("assignment %q has no submission page (window closed?)", assignment.Name)
	}
	return assignment.Submission.Resolve(ctx, tx)
}
