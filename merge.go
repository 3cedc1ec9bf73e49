package duracache

// Merge reconciles a stored value against the current default schema. The
// result is defaults-shaped: every field declared in defaults is present
// afterwards, additive stored fields survive, and structurally incompatible
// stored fragments are rejected in favor of the defaults.
//
// Rules, applied recursively:
//   - a nil value is an explicit null and overrides defaults
//   - where defaults is an array, only an array may replace it
//   - where defaults is an object, a non-object value is discarded wholesale;
//     otherwise keys shared with defaults merge recursively and unknown keys
//     copy through unchanged
//   - at scalar positions the stored value wins
//
// Absence ("no stored value at all") is the caller's case: skip the merge
// and keep defaults.
func Merge(defaults, value any) any {
	if value == nil {
		return nil
	}
	switch d := defaults.(type) {
	case []any:
		if v, ok := value.([]any); ok {
			return v
		}
		return defaults
	case map[string]any:
		v, ok := value.(map[string]any)
		if !ok {
			return defaults
		}
		out := make(map[string]any, len(d)+len(v))
		for k, dv := range d {
			out[k] = dv
		}
		for k, vv := range v {
			if dv, declared := d[k]; declared {
				out[k] = Merge(dv, vv)
			} else {
				out[k] = vv
			}
		}
		return out
	default:
		return value
	}
}
