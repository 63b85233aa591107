package questionsql

import (
	"fmt"
	"strconv"
	"strings"

	domq "github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

type columnKind int

const (
	columnText columnKind = iota
	columnBool
)

// filterable maps filter keys to columns. Keys outside this set are rejected.
var filterable = map[string]columnKind{
	domq.FieldID:             columnText,
	domq.FieldTitle:          columnText,
	domq.FieldDescription:    columnText,
	domq.FieldType:           columnText,
	domq.FieldLanguage:       columnText,
	domq.FieldCategory:       columnText,
	domq.FieldDifficulty:     columnText,
	domq.FieldOrganizationID: columnText,
	domq.FieldIsGlobal:       columnBool,
	domq.FieldEntryFunction:  columnText,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder renders a filter expression into a WHERE clause with positional args.
type whereBuilder struct {
	args []any
}

func (b *whereBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// render returns the WHERE clause body, or "" for an empty expression.
func (b *whereBuilder) render(expr filter.Expression) (string, error) {
	parts := make([]string, 0, len(expr.Must())+len(expr.MustNot()))
	for _, c := range expr.Must() {
		s, err := b.condition(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	for _, c := range expr.MustNot() {
		s, err := b.condition(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, "NOT "+s)
	}
	return strings.Join(parts, " AND "), nil
}

func (b *whereBuilder) condition(c filter.Condition) (string, error) {
	switch c.Kind() {
	case filter.KindMatch:
		kind, ok := filterable[c.Key()]
		if !ok {
			return "", fmt.Errorf("unsupported filter field %q", c.Key())
		}
		if kind == columnBool {
			v, err := strconv.ParseBool(c.Value())
			if err != nil {
				return "", fmt.Errorf("field %q: %w", c.Key(), err)
			}
			return c.Key() + " = " + b.bind(v), nil
		}
		return c.Key() + " = " + b.bind(c.Value()), nil

	case filter.KindContains:
		kind, ok := filterable[c.Key()]
		if !ok || kind != columnText {
			return "", fmt.Errorf("unsupported contains field %q", c.Key())
		}
		pattern := "%" + likeEscaper.Replace(c.Value()) + "%"
		return c.Key() + ` ILIKE ` + b.bind(pattern) + ` ESCAPE '\'`, nil

	case filter.KindAnyOf:
		return b.group(c.Children(), " OR ")

	case filter.KindAllOf:
		return b.group(c.Children(), " AND ")
	}
	return "", fmt.Errorf("unknown condition kind %d", c.Kind())
}

func (b *whereBuilder) group(children []filter.Condition, sep string) (string, error) {
	parts := make([]string, 0, len(children))
	for _, ch := range children {
		s, err := b.condition(ch)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}
