package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/config"
	applog "alfredoptarigan/applicant-portal/internal/logger"
	"alfredoptarigan/applicant-portal/internal/repositories"
	"alfredoptarigan/applicant-portal/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "postings",
		Short:        "Manage the job offers applicants can apply for",
		SilenceUsage: true,
	}

	root.AddCommand(newImportCmd(), newListCmd())
	return root
}

func newImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create or update job offers from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			return withRepository(cmd.Context(), func(ctx context.Context, repo repositories.PostingRepository, log *zap.Logger) error {
				count, err := importPostings(ctx, repo, data, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d job offers\n", count)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a JSON array of job offers")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List job offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd.Context(), func(ctx context.Context, repo repositories.PostingRepository, log *zap.Logger) error {
				return listPostings(ctx, repo, cmd.OutOrStdout())
			})
		},
	}
}

func withRepository(ctx context.Context, fn func(context.Context, repositories.PostingRepository, *zap.Logger) error) error {
	cfg := config.Load()
	log, err := applog.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return err
	}

	return fn(ctx, repositories.NewPostingRepository(db), log)
}

// importPostings upserts every posting in data. Nothing is written if the file is invalid.
func importPostings(ctx context.Context, repo repositories.PostingRepository, data []byte, log *zap.Logger) (int, error) {
	postings, err := services.ParsePostings(data)
	if err != nil {
		return 0, err
	}

	for i := range postings {
		posting := &postings[i]
		if err := repo.Upsert(ctx, posting); err != nil {
			return i, fmt.Errorf("failed to import %s: %w", posting.JobID, err)
		}
		log.Info("job offer imported",
			zap.String("job_id", posting.JobID),
			zap.Int("required_skills", len(posting.RequiredSkills)),
		)
	}

	return len(postings), nil
}

func listPostings(ctx context.Context, repo repositories.PostingRepository, out io.Writer) error {
	postings, err := repo.List(ctx)
	if err != nil {
		return err
	}

	if len(postings) == 0 {
		fmt.Fprintln(out, "No job offers available at the moment.")
		return nil
	}

	for _, p := range postings {
		skills, err := repo.RequiredSkills(ctx, p.JobID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", p.JobID, p.Title, strings.Join(skills, ", "))
	}
	return nil
}
