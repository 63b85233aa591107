package questionsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

func TestWhereBuilder_Render(t *testing.T) {
	isGlobal, _ := filter.NewMatch("is_global", "true")
	own1, _ := filter.NewMatch("organization_id", "acme")
	own2, _ := filter.NewMatch("is_global", "false")
	own, err := filter.NewAllOf(own1, own2)
	require.NoError(t, err)
	scope, err := filter.NewAnyOf(isGlobal, own)
	require.NoError(t, err)
	typ, _ := filter.NewMatch("type", "codeChallenge")
	title, _ := filter.NewContains("title", `50%_off\`)
	desc, _ := filter.NewContains("description", "x")
	text, err := filter.NewAnyOf(title, desc)
	require.NoError(t, err)
	notSelf, _ := filter.NewMatch("id", "q1")

	expr, err := filter.NewExpression([]filter.Condition{scope, typ, text}, []filter.Condition{notSelf})
	require.NoError(t, err)

	var b whereBuilder
	got, err := b.render(expr)
	require.NoError(t, err)

	assert.Equal(t,
		`(is_global = $1 OR (organization_id = $2 AND is_global = $3)) AND type = $4 AND `+
			`(title ILIKE $5 ESCAPE '\' OR description ILIKE $6 ESCAPE '\') AND NOT id = $7`,
		got)
	assert.Equal(t, []any{true, "acme", false, "codeChallenge", `%50\%\_off\\%`, "%x%", "q1"}, b.args)
}

func TestWhereBuilder_Empty(t *testing.T) {
	var b whereBuilder
	got, err := b.render(filter.Expression{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, b.args)
}

func TestWhereBuilder_RejectsUnknownField(t *testing.T) {
	bad, _ := filter.NewMatch("password; DROP TABLE questions", "x")
	expr, err := filter.NewExpression([]filter.Condition{bad}, nil)
	require.NoError(t, err)

	var b whereBuilder
	_, err = b.render(expr)
	assert.Error(t, err)
}

func TestWhereBuilder_RejectsContainsOnBool(t *testing.T) {
	c, _ := filter.NewContains("is_global", "tr")
	expr, err := filter.NewExpression([]filter.Condition{c}, nil)
	require.NoError(t, err)

	var b whereBuilder
	_, err = b.render(expr)
	assert.Error(t, err)
}

func TestWhereBuilder_RejectsBadBool(t *testing.T) {
	c, _ := filter.NewMatch("is_global", "maybe")
	expr, err := filter.NewExpression([]filter.Condition{c}, nil)
	require.NoError(t, err)

	var b whereBuilder
	_, err = b.render(expr)
	assert.Error(t, err)
}
