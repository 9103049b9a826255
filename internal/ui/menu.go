package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/brogergvhs/komikd/internal/chapters"

	"github.com/manifoldco/promptui"
)

const ErrEmptyURL = "URL must not be empty!"

var menuItems = []string{
	"Download manga",
	"List title & chapters of one manga",
	"List manga titles from a listing page",
}

type Prompter interface {
	Select(label string, items []string) (int, error)
	Ask(label string) (string, error)
}

type PromptUI struct{}

func (PromptUI) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}

	idx, _, err := prompt.Run()
	return idx, err
}

func (PromptUI) Ask(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	return prompt.Run()
}

type MenuActions struct {
	Download func(mangaURL string, sel chapters.Selection) error
	Chapters func(mangaURL string) error
	Titles   func(listURL string) error
}

// RunMenu asks for a mode and its inputs, then runs the matching action.
// An empty URL is reported to w and nothing else happens.
func RunMenu(p Prompter, w io.Writer, a MenuActions) error {
	fmt.Fprintln(w, "=== komikd ===")

	idx, err := p.Select("Choose a mode", menuItems)
	if err != nil {
		return fmt.Errorf("selection cancelled")
	}

	if idx == 2 {
		listURL, err := ask(p, "Listing page URL")
		if err != nil {
			return err
		}
		if listURL == "" {
			fmt.Fprintln(w, ErrEmptyURL)
			return nil
		}
		return a.Titles(listURL)
	}

	mangaURL, err := ask(p, "Manga URL")
	if err != nil {
		return err
	}
	if mangaURL == "" {
		fmt.Fprintln(w, ErrEmptyURL)
		return nil
	}

	if idx == 1 {
		return a.Chapters(mangaURL)
	}

	raw, err := ask(p, "Chapter numbers, comma separated (empty for all)")
	if err != nil {
		return err
	}

	return a.Download(mangaURL, chapters.ParseSelection(raw))
}

func ask(p Prompter, label string) (string, error) {
	s, err := p.Ask(label)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	return strings.TrimSpace(s), nil
}
