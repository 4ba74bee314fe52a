package domain

import "time"

const (
	DefaultIcon  = "fas fa-laptop-code"
	DefaultColor = "#00F5FF"
)

// Project is one entry of the portfolio's "projetos" collection.
// Field names on the wire and in the document store keep the collection's
// original Portuguese names.
type Project struct {
	ID           string    `firestore:"-"               json:"id"`
	Title        string    `firestore:"titulo"          json:"titulo"`
	Description  string    `firestore:"descricao"       json:"descricao"`
	Order        int       `firestore:"ordem"           json:"ordem"`
	Link         string    `firestore:"link"            json:"link"`
	Icon         string    `firestore:"icon"            json:"icon"`
	Color        string    `firestore:"color"           json:"color"`
	Technologies []string  `firestore:"tecnologias"     json:"tecnologias"`
	CreatedAt    time.Time `firestore:"dataCriacao"     json:"dataCriacao"`
	UpdatedAt    time.Time `firestore:"dataAtualizacao" json:"dataAtualizacao"`
}

// ProjectInput is everything a caller supplies on create or full update.
// Id and both timestamps are owned by the store.
type ProjectInput struct {
	Title        string   `json:"titulo"      yaml:"titulo"      binding:"required"`
	Description  string   `json:"descricao"   yaml:"descricao"   binding:"required"`
	Order        int      `json:"ordem"       yaml:"ordem"       binding:"gte=1"`
	Link         string   `json:"link"        yaml:"link"        binding:"required,http_url"`
	Icon         string   `json:"icon"        yaml:"icon"`
	Color        string   `json:"color"       yaml:"color"       binding:"omitempty,hexcolor,len=7"`
	Technologies []string `json:"tecnologias" yaml:"tecnologias" binding:"required,min=1,dive,required"`
}

// Input strips the server-owned fields from p.
func (p Project) Input() ProjectInput {
	return ProjectInput{
		Title:        p.Title,
		Description:  p.Description,
		Order:        p.Order,
		Link:         p.Link,
		Icon:         p.Icon,
		Color:        p.Color,
		Technologies: append([]string(nil), p.Technologies...),
	}
}

// WithDefaults fills the optional icon and color.
func (in ProjectInput) WithDefaults() ProjectInput {
	if in.Icon == "" {
		in.Icon = DefaultIcon
	}
	if in.Color == "" {
		in.Color = DefaultColor
	}
	return in
}
