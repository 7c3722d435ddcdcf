// Package config loads picker settings from a YAML file and EMOJIPICK_*
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

// Setting keys.
const (
	KeyUseLocalizedTags    = "use-localized-tags"
	KeyMergeEnglishTags    = "merge-english-tags"
	KeyTagsLocale          = "tags-locale"
	KeyAutoPaste           = "auto-paste"
	KeyMouseMultiSelect    = "mouse-multi-select"
	KeyIconifyOnEsc        = "iconify-on-esc"
	KeyLoadHiddenOnStartup = "load-hidden-on-startup"
	KeyIsFirstRun          = "is-first-run"
	KeySkintoneModifier    = "skintone-modifier"
	KeyPath                = "path"
	KeyDataDir             = "data-dir"
	KeyEmojiTable          = "emoji-table"
	KeyClipboardBackend    = "clipboard-backend"
	KeyPasteBackend        = "paste-backend"
	KeyGridColumns         = "grid-columns"
)

const configName = "config"

// Settings is a snapshot of the picker configuration.
type Settings struct {
	UseLocalizedTags    bool
	MergeEnglishTags    bool
	TagsLocale          string
	AutoPaste           bool
	MouseMultiSelect    bool
	IconifyOnEsc        bool
	LoadHiddenOnStartup bool
	IsFirstRun          bool
	SkintoneModifier    string
	Path                string
	DataDir             string
	EmojiTable          string
	ClipboardBackend    string
	PasteBackend        string
	GridColumns         int
}

// BasePath lets Settings be handed to store.Load directly.
func (s Settings) BasePath() string {
	return s.Path
}

// Store reads settings and persists the few values the picker changes itself.
type Store struct {
	v *viper.Viper
}

// Load reads the config file if present. An explicit file path wins over
// $EMOJIPICK_CONFIG_PATH, which wins over ~/.config/emojipick.
func Load(file string) (*Store, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("EMOJIPICK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	switch {
	case file != "":
		v.SetConfigFile(file)
	default:
		v.SetConfigName(configName) // .yaml is implicit
		v.SetConfigType("yaml")
		if override := os.Getenv("EMOJIPICK_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		if dir, err := homedir.Expand("~/.config/emojipick"); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(file != "" && os.IsNotExist(err)) {
			return nil, errors.Wrap(err, "config: read")
		}
		jww.DEBUG.Printf("config: no config file, using defaults")
	}
	return &Store{v: v}, nil
}

// FromViper wraps an existing viper instance; used by tests.
func FromViper(v *viper.Viper) *Store {
	setDefaults(v)
	return &Store{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyUseLocalizedTags, false)
	v.SetDefault(KeyMergeEnglishTags, false)
	v.SetDefault(KeyTagsLocale, "en")
	v.SetDefault(KeyAutoPaste, false)
	v.SetDefault(KeyMouseMultiSelect, false)
	v.SetDefault(KeyIconifyOnEsc, false)
	v.SetDefault(KeyLoadHiddenOnStartup, false)
	v.SetDefault(KeyIsFirstRun, true)
	v.SetDefault(KeySkintoneModifier, "")
	v.SetDefault(KeyPath, "~/.local/share/emojipick/db")
	v.SetDefault(KeyDataDir, "~/.local/share/emojipick")
	v.SetDefault(KeyEmojiTable, "")
	v.SetDefault(KeyClipboardBackend, "atotto")
	v.SetDefault(KeyPasteBackend, "xdotool")
	v.SetDefault(KeyGridColumns, 8)
}

// Settings returns the current values with paths expanded.
func (s *Store) Settings() Settings {
	cols := s.v.GetInt(KeyGridColumns)
	if cols < 1 {
		cols = 8
	}
	return Settings{
		UseLocalizedTags:    s.v.GetBool(KeyUseLocalizedTags),
		MergeEnglishTags:    s.v.GetBool(KeyMergeEnglishTags),
		TagsLocale:          s.v.GetString(KeyTagsLocale),
		AutoPaste:           s.v.GetBool(KeyAutoPaste),
		MouseMultiSelect:    s.v.GetBool(KeyMouseMultiSelect),
		IconifyOnEsc:        s.v.GetBool(KeyIconifyOnEsc),
		LoadHiddenOnStartup: s.v.GetBool(KeyLoadHiddenOnStartup),
		IsFirstRun:          s.v.GetBool(KeyIsFirstRun),
		SkintoneModifier:    strings.ToUpper(s.v.GetString(KeySkintoneModifier)),
		Path:                expand(s.v.GetString(KeyPath)),
		DataDir:             expand(s.v.GetString(KeyDataDir)),
		EmojiTable:          expand(s.v.GetString(KeyEmojiTable)),
		ClipboardBackend:    s.v.GetString(KeyClipboardBackend),
		PasteBackend:        s.v.GetString(KeyPasteBackend),
		GridColumns:         cols,
	}
}

// AllSettings returns the raw key/value view for printing.
func (s *Store) AllSettings() map[string]interface{} {
	return s.v.AllSettings()
}

// ConfigFileUsed is the file settings were read from, if any.
func (s *Store) ConfigFileUsed() string {
	return s.v.ConfigFileUsed()
}

// ClearFirstRun records that the first-run notice was shown. The change is
// written to the config file, creating it when needed.
func (s *Store) ClearFirstRun() error {
	s.v.Set(KeyIsFirstRun, false)
	return s.write()
}

// SetSkintone changes the preferred skintone modifier and persists it.
func (s *Store) SetSkintone(modifier string) error {
	s.v.Set(KeySkintoneModifier, strings.ToUpper(modifier))
	return s.write()
}

func (s *Store) write() error {
	path := s.v.ConfigFileUsed()
	if path == "" {
		dir, err := homedir.Expand("~/.config/emojipick")
		if err != nil {
			return errors.Wrap(err, "config: resolve directory")
		}
		if override := os.Getenv("EMOJIPICK_CONFIG_PATH"); override != "" {
			dir = override
		}
		path = filepath.Join(dir, configName+".yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "config: ensure directory")
	}
	if err := s.v.WriteConfigAs(path); err != nil {
		return errors.Wrapf(err, "config: write %s", path)
	}
	s.v.SetConfigFile(path)
	return nil
}

func expand(path string) string {
	if path == "" {
		return ""
	}
	out, err := homedir.Expand(path)
	if err != nil {
		jww.WARN.Printf("config: expand %q: %v", path, err)
		return path
	}
	return out
}
