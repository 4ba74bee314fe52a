package web

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
)

//go:embed content.yaml
var defaultContent []byte

// Content is the static part of the site: everything except the projects grid.
type Content struct {
	Owner       Owner                 `yaml:"owner"`
	About       About                 `yaml:"about"`
	Skills      []Skill               `yaml:"skills"`
	OtherSkills []string              `yaml:"other_skills"`
	Contact     Contact               `yaml:"contact"`
	Projects    []domain.ProjectInput `yaml:"projects"`
}

type Owner struct {
	Name     string   `yaml:"name"`
	Greeting string   `yaml:"greeting"`
	Roles    []string `yaml:"roles"`
	Tagline  string   `yaml:"tagline"`
	Photo    string   `yaml:"photo"`
}

type About struct {
	Paragraphs []string    `yaml:"paragraphs"`
	Timeline   []Milestone `yaml:"timeline"`
}

type Milestone struct {
	Period string `yaml:"period"`
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
	Level int    `yaml:"level"`
}

// Label names the proficiency band of the skill level.
func (s Skill) Label() string {
	switch {
	case s.Level >= 90:
		return "Especialista"
	case s.Level >= 80:
		return "Avançado"
	case s.Level >= 70:
		return "Intermediário"
	default:
		return "Básico"
	}
}

type Contact struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	Social   []Link `yaml:"social"`
}

type Link struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
	URL  string `yaml:"url"`
}

// MailTo builds the mailto link the contact form hands to the visitor's
// mail client.
func (c Contact) MailTo(name, email, subject, message string) string {
	body := fmt.Sprintf("Nome: %s\nEmail: %s\n\nMensagem:\n%s", name, email, message)
	return "mailto:" + c.Email + "?subject=" + mailEscape(subject) + "&body=" + mailEscape(body)
}

// Mail clients read '+' literally, so spaces are sent as %20.
func mailEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// LoadContent reads the site content from path, or the embedded default when
// path is empty.
func LoadContent(path string) (*Content, error) {
	raw := defaultContent
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
		raw = b
	}

	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if c.Contact.Email == "" {
		return nil, fmt.Errorf("content: contact.email is required")
	}
	for _, s := range c.Skills {
		if s.Level < 0 || s.Level > 100 {
			return nil, fmt.Errorf("content: skill %q level %d out of range", s.Name, s.Level)
		}
	}
	return &c, nil
}
