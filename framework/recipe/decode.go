package recipe

// Decode turns a loosely typed recipe (as read from YAML or JSON) into a
// Recipe. It returns false when raw does not have the minimal shape:
//
//   - "name" must be a non-empty string
//   - "params", when present and not null, must be a sequence
//   - "methods", when present and not null, must be a sequence of mappings
//     with a non-empty string "name" and an optional sequence "params"
//
// Flags only count when they are the boolean true.
func Decode(raw map[string]any) (*Recipe, bool) {
	if raw == nil {
		return nil, false
	}

	name, ok := raw["name"].(string)
	if !ok || name == "" {
		return nil, false
	}

	params, ok := sequence(raw, "params")
	if !ok {
		return nil, false
	}

	r := &Recipe{
		Name:      name,
		Params:    params,
		Singleton: isTrue(raw["singleton"]),
	}

	methods, ok := sequence(raw, "methods")
	if !ok {
		return nil, false
	}
	for _, item := range methods {
		m, ok := decodeMethod(item)
		if !ok {
			return nil, false
		}
		r.Methods = append(r.Methods, m)
	}

	return r, true
}

func decodeMethod(item any) (Method, bool) {
	raw, ok := mapping(item)
	if !ok {
		return Method{}, false
	}

	name, ok := raw["name"].(string)
	if !ok || name == "" {
		return Method{}, false
	}

	params, ok := sequence(raw, "params")
	if !ok {
		return Method{}, false
	}

	return Method{
		Name:             name,
		Params:           params,
		ReplacesInstance: isTrue(raw["return_replaces_instance"]),
	}, true
}

// sequence reads raw[key]. A missing or null value is (nil, true).
func sequence(raw map[string]any, key string) ([]any, bool) {
	v, present := raw[key]
	if !present || v == nil {
		return nil, true
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	if seq == nil {
		seq = []any{}
	}
	return seq, true
}

func mapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
