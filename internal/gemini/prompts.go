package gemini

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Prompts regroupe les modèles et les gabarits envoyés à Gemini
type Prompts struct {
	Models struct {
		Text  string `yaml:"text"`
		Image string `yaml:"image"`
	} `yaml:"models"`

	StoryFromImage   string `yaml:"story_from_image"`
	StoryFromPrompt  string `yaml:"story_from_prompt"`
	ImageSummary     string `yaml:"image_summary"`
	ImageStyle       string `yaml:"image_style"`
	Inspiration      string `yaml:"inspiration"`
	InspirationStyle string `yaml:"inspiration_style"`

	Fallbacks struct {
		Story       string `yaml:"story"`
		PromptStory string `yaml:"prompt_story"`
		ImagePrompt string `yaml:"image_prompt"`
		Inspiration string `yaml:"inspiration"`
	} `yaml:"fallbacks"`

	StoryExcerptLimit int `yaml:"story_excerpt_limit"`
}

// DefaultPrompts retourne le catalogue embarqué
func DefaultPrompts() *Prompts {
	p, err := ParsePrompts(defaultPrompts)
	if err != nil {
		panic(fmt.Sprintf("prompts.yaml embarqué invalide: %v", err))
	}
	return p
}

// LoadPrompts lit un catalogue YAML; les clés absentes gardent la valeur embarquée
func LoadPrompts(path string) (*Prompts, error) {
	if path == "" {
		return DefaultPrompts(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture %s: %w", path, err)
	}

	p := DefaultPrompts()
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, p.validate()
}

func ParsePrompts(raw []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, p.validate()
}

func (p *Prompts) validate() error {
	var missing []string
	for name, v := range map[string]string{
		"models.text":       p.Models.Text,
		"models.image":      p.Models.Image,
		"story_from_image":  p.StoryFromImage,
		"story_from_prompt": p.StoryFromPrompt,
		"image_summary":     p.ImageSummary,
		"inspiration":       p.Inspiration,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("prompts incomplets: %s", strings.Join(missing, ", "))
	}
	if p.StoryExcerptLimit <= 0 {
		p.StoryExcerptLimit = 5000
	}
	return nil
}

type promptData struct {
	WordCount int
	Prompt    string
	Story     string
}

func render(tmpl string, data promptData) (string, error) {
	t, err := template.New("prompt").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
