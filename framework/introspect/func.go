package introspect

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()

	// ErrPanic wraps a panic raised by a constructor or method.
	ErrPanic = errors.New("introspect: call panicked")
)

// ── Options ───────────────────────────────────────────────────────────────────

type options struct {
	optionalFrom int
	names        []string
	methods      []*Method
}

// Option tunes metadata derived from a function.
type Option func(*options)

// OptionalFrom marks parameter i and every later one as optional. Missing
// optional arguments are passed as zero values.
func OptionalFrom(i int) Option {
	return func(o *options) { o.optionalFrom = i }
}

// Names labels parameters in order. Unnamed parameters become arg0, arg1, ...
func Names(names ...string) Option {
	return func(o *options) { o.names = names }
}

// WithMethods attaches explicit method metadata to a type registered with
// Provide. Ignored by MethodFunc.
func WithMethods(methods ...*Method) Option {
	return func(o *options) { o.methods = append(o.methods, methods...) }
}

func newOptions(opts []Option) options {
	o := options{optionalFrom: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ── Derivation ────────────────────────────────────────────────────────────────

// FromFunc derives a TypeSpec from a constructor function. fn must return the
// instance, optionally followed by an error:
//
//	spec, err := introspect.FromFunc("mail.Mailer", mail.New, introspect.Names("cfg", "from"))
func FromFunc(name string, fn any, opts ...Option) (*TypeSpec, error) {
	v, err := funcValue(fn)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", name, err)
	}

	t := v.Type()
	if t.NumOut() == 0 || t.NumOut() > 2 || t.Out(0) == errorType ||
		(t.NumOut() == 2 && t.Out(1) != errorType) {
		return nil, fmt.Errorf("type %s: %w: want func(...) T or func(...) (T, error), got %s", name, ErrNotFunc, t)
	}

	o := newOptions(opts)
	spec := &TypeSpec{
		Name:   name,
		Params: signature(t, 0, o),
		New: func(args []any) (any, error) {
			return invoke(v, args)
		},
	}

	if out := t.Out(0); out.Kind() != reflect.Interface {
		spec.Type = out
	}

	if len(o.methods) > 0 {
		spec.Methods = make(map[string]*Method, len(o.methods))
		for _, m := range o.methods {
			spec.Methods[m.Name] = m
		}
	}

	return spec, nil
}

// MethodFunc derives method metadata from a method expression, whose first
// parameter is the receiver:
//
//	m, err := introspect.MethodFunc("SetTransport", (*mail.Mailer).SetTransport)
func MethodFunc(name string, fn any, opts ...Option) (*Method, error) {
	v, err := funcValue(fn)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", name, err)
	}
	if v.Type().NumIn() == 0 {
		return nil, fmt.Errorf("method %s: %w: missing receiver parameter", name, ErrNotFunc)
	}

	return &Method{
		Name:   name,
		Params: signature(v.Type(), 1, newOptions(opts)),
		Call: func(instance any, args []any) (any, error) {
			return invoke(v, append([]any{instance}, args...))
		},
	}, nil
}

// boundMethod derives method metadata from the exported method name on
// instance's dynamic type.
func boundMethod(instance any, name string) (*Method, error) {
	m := reflect.ValueOf(instance).MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T.%s", ErrUnknownMethod, instance, name)
	}

	return &Method{
		Name:   name,
		Params: signature(m.Type(), 0, newOptions(nil)),
		Call: func(instance any, args []any) (any, error) {
			bound := reflect.ValueOf(instance).MethodByName(name)
			if !bound.IsValid() {
				return nil, fmt.Errorf("%w: %T.%s", ErrUnknownMethod, instance, name)
			}
			return invoke(bound, args)
		},
	}, nil
}

func funcValue(fn any) (reflect.Value, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	return v, nil
}

// signature lists t's parameters from index skip on.
func signature(t reflect.Type, skip int, o options) []Param {
	params := make([]Param, 0, t.NumIn()-skip)
	for i := skip; i < t.NumIn(); i++ {
		idx := i - skip
		p := Param{
			Name: fmt.Sprintf("arg%d", idx),
			Type: t.In(i).String(),
		}
		if idx < len(o.names) && o.names[idx] != "" {
			p.Name = o.names[idx]
		}
		if t.IsVariadic() && i == t.NumIn()-1 {
			p.Type = t.In(i).Elem().String()
			p.Optional = true
			p.Variadic = true
		}
		if o.optionalFrom >= 0 && idx >= o.optionalFrom {
			p.Optional = true
		}
		params = append(params, p)
	}
	return params
}

// ── Invocation ────────────────────────────────────────────────────────────────

// invoke calls fn with args. Missing fixed arguments become zero values and
// extra arguments to a non-variadic function are dropped.
func invoke(fn reflect.Value, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	t := fn.Type()
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
	}

	in := make([]reflect.Value, 0, max(fixed, len(args)))
	for i := 0; i < fixed; i++ {
		var arg any
		if i < len(args) {
			arg = args[i]
		}
		v, err := coerce(arg, t.In(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, v)
	}

	if t.IsVariadic() {
		elem := t.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := coerce(args[i], elem)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}
	}

	return results(t, fn.Call(in))
}

func coerce(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case isNumber(v.Kind()) && isNumber(t.Kind()):
		return convertNumber(v, t)
	case v.Kind() == reflect.String && t.Kind() == reflect.String:
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrArgument, v.Type(), t)
}

// convertNumber converts v to t only when the value survives unchanged.
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	target := reflect.Zero(t)
	lossy := false

	switch {
	case v.CanInt():
		n := v.Int()
		switch {
		case target.CanInt():
			lossy = target.OverflowInt(n)
		case target.CanUint():
			lossy = n < 0 || target.OverflowUint(uint64(n))
		default:
			lossy = target.OverflowFloat(float64(n))
		}
	case v.CanUint():
		n := v.Uint()
		switch {
		case target.CanInt():
			lossy = n > math.MaxInt64 || target.OverflowInt(int64(n))
		case target.CanUint():
			lossy = target.OverflowUint(n)
		default:
			lossy = target.OverflowFloat(float64(n))
		}
	default:
		f := v.Float()
		switch {
		case target.CanInt():
			lossy = f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f))
		case target.CanUint():
			lossy = f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f))
		default:
			lossy = target.OverflowFloat(f)
		}
	}

	if lossy {
		return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrArgument, v.Interface(), t)
	}
	return v.Convert(t), nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func results(t reflect.Type, out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0) == errorType {
			return nil, asError(out[0])
		}
		return asAny(out[0]), nil
	default:
		if t.Out(len(out)-1) == errorType {
			if err := asError(out[len(out)-1]); err != nil {
				return nil, err
			}
		}
		return asAny(out[0]), nil
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	err, _ := v.Interface().(error)
	return err
}

func asAny(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}
