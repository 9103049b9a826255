package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/ui"
	"github.com/brogergvhs/komikd/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagURL      string
	flagChapters string
	flagDryRun   bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the chapters of a manga as <output>/<series>/Ch<n>/<NNN>.webp",
		RunE:  runDownload,
	}

	downloadCmd.Flags().StringVar(&flagURL, "url", "", "manga series page URL")
	downloadCmd.Flags().StringVar(&flagChapters, "chapters", "", "chapter numbers to download, comma separated (e.g. 3,5.5)")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don’t download")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	if flagURL == "" {
		return fmt.Errorf("missing --url")
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	return downloadManga(cmd.Context(), s, flagURL, chapters.ParseSelection(flagChapters), flagDryRun)
}

func downloadManga(ctx context.Context, s *session, mangaURL string, sel chapters.Selection, dryRun bool) error {
	ctx = orBackground(ctx)

	fmt.Printf("Config file: %s\n", s.usedPath)
	fmt.Println("Full config:")
	s.cfg.Print(os.Stdout)
	fmt.Println()

	if dryRun {
		selected, err := s.runner(nil).Plan(ctx, mangaURL, sel)
		if err != nil {
			return err
		}

		fmt.Printf("Dry-run: %d chapters selected.\n\n", len(selected))
		for i, ch := range selected {
			fmt.Printf("%3d) Ch%s\n    %s\n", i+1, ch.Label(), ch.URL)
		}
		return nil
	}

	if err := os.MkdirAll(s.cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}
	util.SetupInterruptHandler(s.cfg.Output)

	pm := ui.NewProgressManager()
	start := time.Now()

	results, err := s.runner(pm).DownloadManga(ctx, mangaURL, sel)
	pm.Close()

	stats := &ui.Stats{}
	for _, r := range results {
		stats.Add(r.Saved, r.Failed, r.Bytes)
	}
	stats.Print(os.Stdout, time.Since(start))

	if err != nil {
		return err
	}

	fmt.Println("\nAll done.")
	return nil
}
