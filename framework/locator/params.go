package locator

import (
	"strings"

	"github.com/km-arc/go-locator/framework/introspect"
	"github.com/km-arc/go-locator/framework/recipe"
)

// Classify decides how a raw recipe parameter becomes an argument for the
// declared parameter target (nil when none is declared at that position):
//
//  1. non-string values are literals
//  2. strings starting with LiteralMarker are literals, marker stripped
//  3. strings for a string-typed target are literals
//  4. every other string references another identifier
func Classify(raw any, target *introspect.Param) recipe.ParamSpec {
	s, ok := raw.(string)
	if !ok {
		return recipe.ParamSpec{Kind: recipe.Literal, Value: raw}
	}
	if strings.HasPrefix(s, LiteralMarker) {
		return recipe.ParamSpec{Kind: recipe.ForcedLiteral, Value: strings.TrimPrefix(s, LiteralMarker)}
	}
	if target != nil && target.IsString() {
		return recipe.ParamSpec{Kind: recipe.Literal, Value: s}
	}
	return recipe.ParamSpec{Kind: recipe.Reference, Value: s}
}

// resolveParams turns raw parameters into arguments, resolving references
// through the locator. The result has the same length as raw.
func (l *Locator) resolveParams(res *resolution, raw []any, targets []introspect.Param) ([]any, error) {
	args := make([]any, 0, len(raw))
	for k, v := range raw {
		p := Classify(v, targetAt(targets, k))
		if p.Kind != recipe.Reference {
			args = append(args, p.Value)
			continue
		}

		obj, err := l.resolve(res, p.Value.(string))
		if err != nil {
			return nil, err
		}
		args = append(args, obj)
	}
	return args, nil
}

// targetAt returns the declared parameter for position k. Positions past a
// trailing variadic parameter share its declaration.
func targetAt(targets []introspect.Param, k int) *introspect.Param {
	if k < len(targets) {
		return &targets[k]
	}
	if n := len(targets); n > 0 && targets[n-1].Variadic {
		return &targets[n-1]
	}
	return nil
}
