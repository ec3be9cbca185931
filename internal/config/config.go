// Package config loads exam-generation parameters. The canonical form is
// an XML document; a YAML form with the same structure is accepted by
// file extension. The configuration is immutable after Load.
package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultTitle   = "Physics"
	defaultName    = "Exam"
	defaultVariant = "var"
)

// SectionQuota is the target sample size for one section. Quota order is
// the order section samples consume random draws, so it is preserved.
type SectionQuota struct {
	Name      string `yaml:"name"`
	Questions int    `yaml:"questions"`
}

type Config struct {
	Seeds    []int64
	Files    []string
	Sections []SectionQuota
	Title    string
	Name     string
	Variant  string
	// AnswersVariant adds a paired exam_<seed>_answers.tex per seed.
	AnswersVariant bool
}

type configXML struct {
	Seeds    []string `xml:"seeds>seed"`
	Files    []string `xml:"files>file"`
	Sections []struct {
		Name      string `xml:"name,attr"`
		Questions string `xml:"questions"`
	} `xml:"sections>section"`
	Title          *string `xml:"title"`
	Name           *string `xml:"name"`
	Variant        *string `xml:"variant"`
	AnswersVariant *string `xml:"correct-answers-variant"`
}

type configYAML struct {
	Seeds          []int64        `yaml:"seeds"`
	Files          []string       `yaml:"files"`
	Sections       []SectionQuota `yaml:"sections"`
	Title          *string        `yaml:"title"`
	Name           *string        `yaml:"name"`
	Variant        *string        `yaml:"variant"`
	AnswersVariant *bool          `yaml:"correct-answers-variant"`
}

// Load reads, parses, and validates a configuration file. Bank paths are
// resolved relative to the configuration file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = parseYAML(data)
	default:
		cfg, err = parseXML(data)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, f := range cfg.Files {
		if !filepath.IsAbs(f) {
			cfg.Files[i] = filepath.Join(dir, f)
		}
	}

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parseXML(data []byte) (Config, error) {
	var raw configXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Title:          stringOr(raw.Title, defaultTitle),
		Name:           stringOr(raw.Name, defaultName),
		Variant:        stringOr(raw.Variant, defaultVariant),
		AnswersVariant: true,
	}

	for _, s := range raw.Seeds {
		seed, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("seed %q is not an integer", strings.TrimSpace(s))
		}
		cfg.Seeds = append(cfg.Seeds, seed)
	}

	for _, f := range raw.Files {
		cfg.Files = append(cfg.Files, strings.TrimSpace(f))
	}

	for _, s := range raw.Sections {
		count, err := strconv.Atoi(strings.TrimSpace(s.Questions))
		if err != nil {
			return Config{}, fmt.Errorf("section %q: questions %q is not an integer", s.Name, strings.TrimSpace(s.Questions))
		}
		cfg.Sections = append(cfg.Sections, SectionQuota{Name: strings.TrimSpace(s.Name), Questions: count})
	}

	if raw.AnswersVariant != nil {
		v := strings.TrimSpace(*raw.AnswersVariant)
		if v == "" {
			cfg.AnswersVariant = false
		} else {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, fmt.Errorf("correct-answers-variant %q is not a boolean", v)
			}
			cfg.AnswersVariant = b
		}
	}
	return cfg, nil
}

func parseYAML(data []byte) (Config, error) {
	var raw configYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Seeds:          raw.Seeds,
		Files:          raw.Files,
		Sections:       raw.Sections,
		Title:          stringOr(raw.Title, defaultTitle),
		Name:           stringOr(raw.Name, defaultName),
		Variant:        stringOr(raw.Variant, defaultVariant),
		AnswersVariant: true,
	}
	if raw.AnswersVariant != nil {
		cfg.AnswersVariant = *raw.AnswersVariant
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if len(cfg.Seeds) == 0 {
		return errors.New("at least one seed is required")
	}
	seen := make(map[int64]bool, len(cfg.Seeds))
	for _, seed := range cfg.Seeds {
		if seen[seed] {
			return fmt.Errorf("duplicate seed %d", seed)
		}
		seen[seed] = true
	}

	if len(cfg.Files) == 0 {
		return errors.New("at least one bank file is required")
	}
	for _, f := range cfg.Files {
		info, err := os.Stat(f)
		if err != nil {
			return fmt.Errorf("bank file %s: %w", f, err)
		}
		if info.IsDir() {
			return fmt.Errorf("bank file %s is a directory", f)
		}
	}

	if len(cfg.Sections) == 0 {
		return errors.New("at least one section quota is required")
	}
	names := make(map[string]bool, len(cfg.Sections))
	for _, s := range cfg.Sections {
		if s.Name == "" {
			return errors.New("section quota is missing a name")
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate section quota %q", s.Name)
		}
		names[s.Name] = true
		if s.Questions <= 0 {
			return fmt.Errorf("section %q: sample size %d must be positive", s.Name, s.Questions)
		}
	}
	return nil
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	if s := strings.TrimSpace(*v); s != "" {
		return s
	}
	return def
}
