package stem

// Step records one applied rule
type Step struct {
	Stage       string `json:"stage"`
	Suffix      string `json:"suffix"`
	Replacement string `json:"replacement"`
	Before      string `json:"before"`
	After       string `json:"after"`
}

// recorder collects steps; a nil recorder drops them
type recorder struct {
	steps []Step
}

func (r *recorder) record(stage string, rule Rule, before, after string) {
	if r == nil {
		return
	}
	r.steps = append(r.steps, Step{
		Stage:       stage,
		Suffix:      rule.Suffix,
		Replacement: rule.Replacement,
		Before:      before,
		After:       after,
	})
}

// Trace stems word like Stem and also returns every rule that fired, in
// order. Words left alone by the facade produce no steps.
func Trace(word string, alg Algorithm) (string, []Step) {
	w, ok := prepare(word)
	if !ok {
		return w, nil
	}
	rec := &recorder{}
	out := dispatch(w, alg, rec)
	return out, rec.steps
}

// After returns the word as it stood once the named stage finished, or
// false when the stage never fired.
func After(steps []Step, stage string) (string, bool) {
	result, found := "", false
	for _, s := range steps {
		if s.Stage == stage {
			result, found = s.After, true
		}
	}
	return result, found
}
