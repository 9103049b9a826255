package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/brogergvhs/komikd/internal/report"

	"github.com/spf13/cobra"
)

var flagListURL string

func init() {
	chaptersCmd := &cobra.Command{
		Use:   "chapters",
		Short: "Print the title and every chapter of a manga",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagListURL == "" {
				return fmt.Errorf("missing --url")
			}
			s, err := newSession()
			if err != nil {
				return err
			}
			return listChapters(cmd.Context(), s, flagListURL)
		},
	}
	chaptersCmd.Flags().StringVar(&flagListURL, "url", "", "manga series page URL")

	titlesCmd := &cobra.Command{
		Use:   "titles",
		Short: "Print every manga title found on a listing page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagListURL == "" {
				return fmt.Errorf("missing --url")
			}
			s, err := newSession()
			if err != nil {
				return err
			}
			return listTitles(cmd.Context(), s, flagListURL)
		},
	}
	titlesCmd.Flags().StringVar(&flagListURL, "url", "", "listing page URL")

	rootCmd.AddCommand(chaptersCmd, titlesCmd)
}

func listChapters(ctx context.Context, s *session, mangaURL string) error {
	return report.MangaChapters(orBackground(ctx), os.Stdout, s.scraper, mangaURL)
}

func listTitles(ctx context.Context, s *session, listURL string) error {
	return report.Titles(orBackground(ctx), os.Stdout, s.scraper, listURL)
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
