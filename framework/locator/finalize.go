package locator

import (
	"errors"

	"go.uber.org/zap"

	"github.com/km-arc/go-locator/framework/recipe"
)

// ErrNilReplacement means a method marked as replacing the instance returned
// nothing to replace it with.
var ErrNilReplacement = errors.New("replacing method returned nil")

// finalize registers singletons and applies r's post-construction methods in
// order. The singleton is registered before any method runs, so a method that
// looks up id again sees this instance. A replacing method changes what later
// methods and the caller get, not what the registry holds.
func (l *Locator) finalize(res *resolution, id string, r *recipe.Recipe, instance any) (any, error) {
	if r.Singleton {
		l.registry.set(id, instance)
		l.logger.Debug("singleton registered", zap.String("id", id))
	}

	for _, m := range r.Methods {
		method, err := l.types.Method(instance, m.Name)
		if err != nil {
			return nil, ConstructionError{Type: r.Name, Method: m.Name, Reason: ReasonFailed, Cause: err}
		}

		if len(m.Params) < method.Required() {
			return nil, ConstructionError{Type: r.Name, Method: m.Name, Reason: ReasonNotEnoughParams}
		}

		var args []any
		if m.Params != nil {
			args, err = l.resolveParams(res, m.Params, method.Params)
			if err != nil {
				return nil, err
			}
		}

		out, err := method.Call(instance, args)
		if err != nil {
			return nil, ConstructionError{Type: r.Name, Method: m.Name, Reason: ReasonFailed, Cause: err}
		}

		l.logger.Debug("method invoked",
			zap.String("id", id),
			zap.String("method", m.Name),
			zap.Bool("replaces_instance", m.ReplacesInstance),
		)

		if m.ReplacesInstance {
			if out == nil {
				return nil, ConstructionError{Type: r.Name, Method: m.Name, Reason: ReasonFailed, Cause: ErrNilReplacement}
			}
			instance = out
		}
	}

	return instance, nil
}
