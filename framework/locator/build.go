package locator

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-locator/framework/recipe"
)

// build constructs a new instance of r's target type.
func (l *Locator) build(res *resolution, r *recipe.Recipe) (any, error) {
	spec, err := l.types.Constructor(r.Name)
	if err != nil {
		return nil, ConstructionError{Type: r.Name, Reason: ReasonNotInstantiable, Cause: err}
	}

	var args []any
	if len(spec.Params) > 0 {
		if len(r.Params) < spec.Required() {
			return nil, ConstructionError{Type: r.Name, Reason: ReasonNotEnoughParams}
		}
		args, err = l.resolveParams(res, r.Params, spec.Params)
		if err != nil {
			return nil, err
		}
	}

	instance, err := spec.New(args)
	if err != nil {
		return nil, ConstructionError{Type: r.Name, Reason: ReasonFailed, Cause: err}
	}
	if instance == nil {
		return nil, ConstructionError{Type: r.Name, Reason: ReasonNotInstantiable}
	}

	l.logger.Debug("instance built", zap.String("type", r.Name), zap.Int("args", len(args)))
	return instance, nil
}
