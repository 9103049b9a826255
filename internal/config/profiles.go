package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	appName      = "komikd"
	defaultLabel = "Default"
	profileExt   = ".yaml"
)

var ErrNoConfig = errors.New("no config selected")

// Root is the per-user config directory:
// %APPDATA%/komikd, $XDG_CONFIG_HOME/komikd or ~/.config/komikd.
func Root() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appName)
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// Store keeps labeled YAML profiles plus the label of the active one.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func DefaultStore() *Store {
	return NewStore(Root())
}

func (s *Store) ConfigsDir() string {
	return filepath.Join(s.root, "configs")
}

func (s *Store) currentFile() string {
	return filepath.Join(s.root, "current_config")
}

func (s *Store) PathOf(label string) string {
	return filepath.Join(s.ConfigsDir(), label+profileExt)
}

func (s *Store) ensureDirs() error {
	return os.MkdirAll(s.ConfigsDir(), 0755)
}

func checkLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("label %q must not contain path separators", label)
	}

	return nil
}

func (s *Store) CurrentLabel() (string, error) {
	b, err := os.ReadFile(s.currentFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}

	return label, nil
}

func (s *Store) ActivePath() (string, error) {
	label, err := s.CurrentLabel()
	if err != nil {
		return "", err
	}

	return s.PathOf(label), nil
}

type ProfileInfo struct {
	Label  string
	Path   string
	Active bool
}

func (s *Store) List() ([]ProfileInfo, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.ConfigsDir())
	if err != nil {
		return nil, err
	}

	active, _ := s.CurrentLabel()
	var out []ProfileInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, profileExt) {
			continue
		}

		label := strings.TrimSuffix(name, profileExt)
		out = append(out, ProfileInfo{
			Label:  label,
			Path:   s.PathOf(label),
			Active: label == active,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (s *Store) Switch(label string) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	if _, err := os.Stat(s.PathOf(label)); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	return os.WriteFile(s.currentFile(), []byte(label), 0644)
}

// Create writes a profile holding the default values.
func (s *Store) Create(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := s.ensureDirs(); err != nil {
		return "", err
	}

	path := s.PathOf(label)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

// InitDefault creates the Default profile when missing and activates it.
// It returns os.ErrExist along with the path when the profile was already
// there.
func (s *Store) InitDefault() (string, error) {
	path, err := s.Create(defaultLabel)
	if err != nil {
		path = s.PathOf(defaultLabel)
		if _, statErr := os.Stat(path); statErr != nil {
			return "", err
		}
		err = os.ErrExist
	}

	if serr := s.Switch(defaultLabel); serr != nil {
		return "", serr
	}

	return path, err
}

// Remove deletes a profile. Removing the active one falls back to Default.
func (s *Store) Remove(label string) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	if label == defaultLabel {
		return errors.New("cannot remove the Default config")
	}

	path := s.PathOf(label)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	if active, _ := s.CurrentLabel(); active == label {
		if err := s.Switch(defaultLabel); err != nil {
			return fmt.Errorf("failed switching to Default: %w", err)
		}
	}

	return os.Remove(path)
}

// Reset overwrites the active profile with the default values.
func (s *Store) Reset() (string, error) {
	path, err := s.ActivePath()
	if err != nil {
		return "", err
	}

	return path, SaveYAML(DefaultConfig(), path)
}
