package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"gitsift/internal/config"
)

// askAll is replaced in tests
var askAll = survey.Ask

// ConfigWizard asks for each setting, offering the current value as default
type ConfigWizard struct {
	base *config.Config
}

// NewConfigWizard creates a wizard starting from base. A nil base starts from
// the defaults.
func NewConfigWizard(base *config.Config) *ConfigWizard {
	if base == nil {
		base = config.Default()
	}
	return &ConfigWizard{base: base}
}

type wizardAnswers struct {
	Repo      string `survey:"repo"`
	Branch    string `survey:"branch"`
	Host      string `survey:"host"`
	PageSize  string `survey:"page_size"`
	Threshold string `survey:"threshold"`
	Workers   string `survey:"workers"`
}

// Run asks the questions and returns the validated result
func (w *ConfigWizard) Run() (*config.Config, error) {
	questions := []*survey.Question{
		{
			Name:     "repo",
			Prompt:   &survey.Input{Message: "Repository path:", Default: w.base.Repo},
			Validate: survey.Required,
		},
		{
			Name: "branch",
			Prompt: &survey.Input{
				Message: "Branch:",
				Default: w.base.Branch,
				Help:    "Leave empty to follow HEAD",
			},
		},
		{
			Name:     "host",
			Prompt:   &survey.Input{Message: "Hosting service:", Default: w.base.Host, Help: "Used to build commit links"},
			Validate: survey.Required,
		},
		{
			Name:     "page_size",
			Prompt:   &survey.Input{Message: "History page size:", Default: strconv.Itoa(w.base.PageSize)},
			Validate: intAtLeast(1),
		},
		{
			Name: "threshold",
			Prompt: &survey.Input{
				Message: "Ownership threshold:",
				Default: strconv.Itoa(w.base.Threshold),
				Help:    "Only counts above this are listed; 0 lists nothing",
			},
			Validate: intAtLeast(0),
		},
		{
			Name:     "workers",
			Prompt:   &survey.Input{Message: "Diff workers:", Default: strconv.Itoa(w.base.Workers)},
			Validate: intAtLeast(1),
		},
	}

	var answers wizardAnswers
	if err := askAll(questions, &answers); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, fmt.Errorf("configuration cancelled")
		}
		return nil, err
	}

	return answers.toConfig()
}

func (a wizardAnswers) toConfig() (*config.Config, error) {
	cfg := &config.Config{
		Repo:   a.Repo,
		Branch: a.Branch,
		Host:   a.Host,
	}

	for _, field := range []struct {
		name string
		raw  string
		dst  *int
	}{
		{"page_size", a.PageSize, &cfg.PageSize},
		{"threshold", a.Threshold, &cfg.Threshold},
		{"workers", a.Workers, &cfg.Workers},
	} {
		n, err := strconv.Atoi(field.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", field.name, field.raw, err)
		}
		*field.dst = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intAtLeast(floor int) survey.Validator {
	return func(val interface{}) error {
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected a number")
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if n < floor {
			return fmt.Errorf("must be at least %d", floor)
		}
		return nil
	}
}
