package generate

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompt.tmpl
var defaultTemplate string

// defaultCommands is the LaTeX vocabulary the model is allowed to use
var defaultCommands = []string{
	`\documentclass`, `\usepackage`, `\begin`, `\end`, `\section`, `\subsection`, `\textbf`, `\textit`,
	`\underline`, `\href`, `\item`, `\hfill`, `\vspace`, `\hspace`, `\small`, `\large`, `\Large`,
	`\centering`, `\newline`, `\\`, `\pagestyle`, `\setlength`,
}

//go:generate go run ./internal/schema ../../prompt-schema.json

// PromptConfig customizes the prompt sent to the model. Loaded from YAML, all fields are optional.
type PromptConfig struct {
	Model    string   `yaml:"model" jsonschema:"description=Gemini model name"`
	Template string   `yaml:"template" jsonschema:"description=text/template for the prompt, fields .CurrentResume .JobDescription .Commands"`
	Commands []string `yaml:"commands" jsonschema:"description=LaTeX commands the model may use"`
}

// LoadPromptConfig reads prompt overrides from a YAML file
func LoadPromptConfig(path string) (PromptConfig, error) {
	data, err := os.ReadFile(path) //nolint gosec
	if err != nil {
		return PromptConfig{}, fmt.Errorf("failed to read prompt config %s: %w", path, err)
	}
	var res PromptConfig
	if err := yaml.Unmarshal(data, &res); err != nil {
		return PromptConfig{}, fmt.Errorf("failed to parse prompt config %s: %w", path, err)
	}
	return res, nil
}

// prompt renders the instruction text for a single request
type prompt struct {
	tmpl     *template.Template
	commands []string
}

func newPrompt(cfg PromptConfig) (*prompt, error) {
	text := cfg.Template
	if strings.TrimSpace(text) == "" {
		text = defaultTemplate
	}
	commands := cfg.Commands
	if len(commands) == 0 {
		commands = defaultCommands
	}
	tmpl, err := template.New("prompt").Funcs(template.FuncMap{"join": strings.Join}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("can't parse prompt template: %w", err)
	}
	return &prompt{tmpl: tmpl, commands: commands}, nil
}

func (p *prompt) build(req Request) (string, error) {
	data := struct {
		Request
		Commands []string
	}{Request: req, Commands: p.commands}

	buf := bytes.Buffer{}
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to apply prompt template: %w", err)
	}
	return buf.String(), nil
}
