package admin

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
)

const (
	msgRequired     = "Campo obrigatório."
	msgOrder        = "A ordem deve ser um número inteiro maior ou igual a 1."
	msgLink         = "Informe uma URL válida (http ou https)."
	msgColor        = "A cor deve estar no formato #RRGGBB."
	msgTechnologies = "Informe ao menos uma tecnologia."
)

// formKeys maps the struct fields of Form and domain.ProjectInput to the
// names the browser and the JSON API use.
var formKeys = map[string]string{
	"Title":        "titulo",
	"Description":  "descricao",
	"Order":        "ordem",
	"Link":         "link",
	"Icon":         "icon",
	"Color":        "color",
	"Technologies": "tecnologias",
}

// Validate runs the binding rules of domain.ProjectInput.
func Validate(in domain.ProjectInput) error {
	return FieldErrors(binding.Validator.ValidateStruct(in))
}

// FieldErrors turns validator errors into a *ValidationError with one
// Portuguese message per field. Any other error is returned unchanged.
func FieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		// dive errors name the element, e.g. Technologies[1]
		name, _, _ := strings.Cut(fe.StructField(), "[")
		key, ok := formKeys[name]
		if !ok {
			key = strings.ToLower(name)
		}
		if _, seen := fields[key]; !seen {
			fields[key] = message(name, fe.Tag())
		}
	}
	return &ValidationError{Fields: fields}
}

func message(field, tag string) string {
	switch field {
	case "Order":
		if tag == "required" {
			return msgRequired
		}
		return msgOrder
	case "Link":
		if tag == "required" {
			return msgRequired
		}
		return msgLink
	case "Color":
		return msgColor
	case "Technologies":
		return msgTechnologies
	}
	return msgRequired
}
