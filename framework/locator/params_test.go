package locator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-locator/framework/introspect"
	"github.com/km-arc/go-locator/framework/locator"
	"github.com/km-arc/go-locator/framework/recipe"
)

func TestClassify(t *testing.T) {
	str := &introspect.Param{Name: "from", Type: "string"}
	ptr := &introspect.Param{Name: "clock", Type: "*time.Clock"}
	named := &introspect.Param{Name: "level", Type: "zapcore.Level"}

	tests := []struct {
		name   string
		raw    any
		target *introspect.Param
		want   recipe.ParamSpec
	}{
		{"int", 42, ptr, recipe.ParamSpec{Kind: recipe.Literal, Value: 42}},
		{"bool", true, nil, recipe.ParamSpec{Kind: recipe.Literal, Value: true}},
		{"nil", nil, nil, recipe.ParamSpec{Kind: recipe.Literal, Value: nil}},
		{"slice", []any{"a"}, nil, recipe.ParamSpec{Kind: recipe.Literal, Value: []any{"a"}}},
		{"marker", "!clock", ptr, recipe.ParamSpec{Kind: recipe.ForcedLiteral, Value: "clock"}},
		{"marker only", "!", nil, recipe.ParamSpec{Kind: recipe.ForcedLiteral, Value: ""}},
		{"marker beats string target", "!x", str, recipe.ParamSpec{Kind: recipe.ForcedLiteral, Value: "x"}},
		{"string target", "clock", str, recipe.ParamSpec{Kind: recipe.Literal, Value: "clock"}},
		{"reference", "clock", ptr, recipe.ParamSpec{Kind: recipe.Reference, Value: "clock"}},
		{"no target", "clock", nil, recipe.ParamSpec{Kind: recipe.Reference, Value: "clock"}},
		{"named string type", "debug", named, recipe.ParamSpec{Kind: recipe.Reference, Value: "debug"}},
		{"empty string", "", nil, recipe.ParamSpec{Kind: recipe.Reference, Value: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locator.Classify(tt.raw, tt.target))
		})
	}
}

func TestClassify_KindNames(t *testing.T) {
	assert.Equal(t, "literal", recipe.Literal.String())
	assert.Equal(t, "forced-literal", recipe.ForcedLiteral.String())
	assert.Equal(t, "reference", recipe.Reference.String())
}
