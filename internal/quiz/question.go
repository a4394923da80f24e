// Package quiz generates questions about a Pokémon, grades free-text and
// true/false answers with tolerant matching, and tracks a quiz session.
package quiz

import "strings"

// Kind tells the display layer which input widget a question needs.
type Kind string

const (
	KindFreeText Kind = "free_text"
	KindBoolean  Kind = "boolean"
)

// Field selects the matching strategy used to grade a question.
type Field string

const (
	FieldGenus      Field = "genus"
	FieldType       Field = "type"
	FieldHeight     Field = "height"
	FieldWeight     Field = "weight"
	FieldEggGroup   Field = "egg_group"
	FieldAbility    Field = "ability"
	FieldEvolution  Field = "evolution"
	FieldFlavorText Field = "flavor_text"
	FieldGeneric    Field = "generic"
)

// Shape discriminates the Expected union.
type Shape int

const (
	ShapeText Shape = iota
	ShapeList
	ShapeBool
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeBool:
		return "bool"
	default:
		return "text"
	}
}

// Expected is the correct answer of a question. Only the member named by
// Shape is meaningful.
type Expected struct {
	Shape Shape
	Text  string
	List  []string
	Bool  bool
}

func TextAnswer(s string) Expected { return Expected{Shape: ShapeText, Text: s} }

func ListAnswer(items []string) Expected {
	return Expected{Shape: ShapeList, List: append([]string{}, items...)}
}

func BoolAnswer(b bool) Expected { return Expected{Shape: ShapeBool, Bool: b} }

// String renders the answer the way it is shown in feedback.
func (e Expected) String() string {
	switch e.Shape {
	case ShapeList:
		return strings.Join(e.List, ", ")
	case ShapeBool:
		if e.Bool {
			return "True"
		}
		return "False"
	default:
		return e.Text
	}
}

// Question is one gradable unit of a quiz.
type Question struct {
	Kind     Kind
	Field    Field
	Prompt   string
	Expected Expected
	// Notes carries display-only detail such as ability effects.
	Notes []string
}

// shapeFor is the Expected shape each field is graded against.
func shapeFor(f Field) Shape {
	switch f {
	case FieldType, FieldEggGroup, FieldAbility, FieldEvolution:
		return ShapeList
	case FieldFlavorText:
		return ShapeBool
	default:
		return ShapeText
	}
}
