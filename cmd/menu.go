package cmd

import (
	"os"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/ui"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Interactive menu: download, list chapters or list titles",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	})
}

func runMenu(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx := orBackground(cmd.Context())

	return ui.RunMenu(ui.PromptUI{}, os.Stdout, ui.MenuActions{
		Download: func(mangaURL string, sel chapters.Selection) error {
			return downloadManga(ctx, s, mangaURL, sel, false)
		},
		Chapters: func(mangaURL string) error {
			return listChapters(ctx, s, mangaURL)
		},
		Titles: func(listURL string) error {
			return listTitles(ctx, s, listURL)
		},
	})
}
