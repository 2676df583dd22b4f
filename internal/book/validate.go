package book

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const createValidationMessage = "title and author required"

var validate = validator.New()

// CreateInput is the wire shape accepted by POST /books.
type CreateInput struct {
	Title  string  `json:"title" validate:"required"`
	Author string  `json:"author" validate:"required"`
	Year   *int    `json:"year,omitempty"`
	Genre  *string `json:"genre,omitempty"`
}

// UnmarshalJSON accepts a numeric string for year ("1965"). Other fields
// decode strictly.
func (in *CreateInput) UnmarshalJSON(data []byte) error {
	type createAlias CreateInput
	aux := struct {
		*createAlias
		Year *lenientInt `json:"year"`
	}{createAlias: (*createAlias)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	in.Year = nil
	if aux.Year != nil {
		year := int(*aux.Year)
		in.Year = &year
	}
	return nil
}

// ValidateForCreate checks that title and author are present and non-empty.
// Year and genre pass through untouched.
func ValidateForCreate(in CreateInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return &ValidationError{Message: createValidationMessage, Fields: fields}
}

// ToBook maps the validated input to a Book without an id.
func (in CreateInput) ToBook() Book {
	return Book{
		Title:  in.Title,
		Author: in.Author,
		Year:   in.Year,
		Genre:  in.Genre,
	}
}
