package locator

import "fmt"

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result.
//
//	// Instead of: obj, err := l.Get("mailer"); m := obj.(*mail.Mailer)
//	// Write:      m, err := locator.Resolve[*mail.Mailer](l, "mailer")
func Resolve[T any](l *Locator, id string) (T, error) {
	var zero T

	obj, err := l.Get(id)
	if err != nil {
		return zero, err
	}

	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("locator: Resolve[%T]: [%s] resolved to %T", zero, id, obj)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Meant for start-up code.
func MustResolve[T any](l *Locator, id string) T {
	typed, err := Resolve[T](l, id)
	if err != nil {
		panic(err)
	}
	return typed
}
