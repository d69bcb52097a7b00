/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package crew

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"chainguard.dev/thinktank/agents/promptbuilder"
	"gopkg.in/yaml.v3"
)

//go:embed config/agents.yaml config/tasks.yaml
var configFS embed.FS

// AgentConfig describes one role's persona.
type AgentConfig struct {
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

// TaskConfig describes the work of one stage.
type TaskConfig struct {
	Description    string `yaml:"description"`
	ExpectedOutput string `yaml:"expected_output"`
	Agent          Role   `yaml:"agent"`
}

// Config is the prompt configuration for every role.
type Config struct {
	Agents map[Role]AgentConfig
	Tasks  map[string]TaskConfig
}

// taskPlaceholders are the names task templates may use.
var taskPlaceholders = []string{"topic", "current_year"}

// LoadConfig decodes and validates the embedded configuration.
func LoadConfig() (*Config, error) {
	agents, err := configFS.ReadFile("config/agents.yaml")
	if err != nil {
		return nil, err
	}
	tasks, err := configFS.ReadFile("config/tasks.yaml")
	if err != nil {
		return nil, err
	}
	return ParseConfig(agents, tasks)
}

// ParseConfig decodes and validates agent and task YAML.
func ParseConfig(agentsYAML, tasksYAML []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(agentsYAML, &cfg.Agents); err != nil {
		return nil, fmt.Errorf("parsing agents config: %w", err)
	}
	if err := yaml.Unmarshal(tasksYAML, &cfg.Tasks); err != nil {
		return nil, fmt.Errorf("parsing tasks config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every role has one agent and one task, and that the
// templates only use known placeholders.
func (c *Config) Validate() error {
	var errs []error
	for _, r := range Roles() {
		a, ok := c.Agents[r]
		if !ok {
			errs = append(errs, fmt.Errorf("agent %s: not configured", r))
			continue
		}
		if a.Role == "" || a.Goal == "" || a.Backstory == "" {
			errs = append(errs, fmt.Errorf("agent %s: role, goal and backstory are required", r))
		}
		if _, err := c.systemPrompt(r); err != nil {
			errs = append(errs, fmt.Errorf("agent %s: %w", r, err))
		}

		names := c.tasksFor(r)
		switch len(names) {
		case 0:
			errs = append(errs, fmt.Errorf("agent %s: no task", r))
			continue
		case 1:
		default:
			errs = append(errs, fmt.Errorf("agent %s: %d tasks (%s)", r, len(names), strings.Join(names, ", ")))
			continue
		}
		t := c.Tasks[names[0]]
		if t.Description == "" || t.ExpectedOutput == "" {
			errs = append(errs, fmt.Errorf("task %s: description and expected_output are required", names[0]))
		}
		p, err := c.taskPrompt(names[0])
		if err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", names[0], err))
			continue
		}
		for name := range p.GetBindings() {
			if name != contextPlaceholder && !slices.Contains(taskPlaceholders, name) {
				errs = append(errs, fmt.Errorf("task %s: unknown placeholder {{%s}}", names[0], name))
			}
		}
	}
	for name, t := range c.Tasks {
		if _, ok := labels[t.Agent]; !ok {
			errs = append(errs, fmt.Errorf("task %s: unknown agent %q", name, t.Agent))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) tasksFor(r Role) []string {
	var names []string
	for name, t := range c.Tasks {
		if t.Agent == r {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

const contextPlaceholder = "context"

// systemPrompt renders the persona of r. Persona text takes no placeholders.
func (c *Config) systemPrompt(r Role) (*promptbuilder.Prompt, error) {
	a := c.Agents[r]
	p, err := promptbuilder.NewTrustedPrompt(promptbuilder.Trusted(fmt.Sprintf(
		"You are the %s in a think tank of six specialists.\n\n"+
			"Your goal: %s\n\n"+
			"Your background: %s\n\n"+
			"Use your tools to ground your work in current information. When you are done, "+
			"call submit_result with your complete output in markdown.",
		strings.TrimSpace(a.Role), strings.TrimSpace(a.Goal), strings.TrimSpace(a.Backstory))))
	if err != nil {
		return nil, err
	}
	if len(p.Unbound()) > 0 {
		return nil, fmt.Errorf("persona cannot use placeholders (found %s)", strings.Join(p.Unbound(), ", "))
	}
	return p, nil
}

// taskPrompt is the user prompt template of the named task.
func (c *Config) taskPrompt(name string) (*promptbuilder.Prompt, error) {
	t := c.Tasks[name]
	return promptbuilder.NewTrustedPrompt(promptbuilder.Trusted(
		strings.TrimSpace(t.Description) +
			"\n\nExpected output: " + strings.TrimSpace(t.ExpectedOutput) +
			"\n\n{{" + contextPlaceholder + "}}"))
}

// Stage is one step of the pipeline.
type Stage struct {
	Role Role
	Task string
	// Prompt is the user prompt template, bound by Request.
	Prompt *promptbuilder.Prompt
}

// Stages returns the stages in pipeline order. The configuration must
// have passed Validate.
func (c *Config) Stages() []Stage {
	stages := make([]Stage, 0, len(Roles()))
	for _, r := range Roles() {
		name := c.tasksFor(r)[0]
		stages = append(stages, Stage{
			Role:   r,
			Task:   name,
			Prompt: promptbuilder.Must(c.taskPrompt(name)),
		})
	}
	return stages
}
