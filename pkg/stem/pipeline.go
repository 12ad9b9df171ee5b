package stem

// runStages pushes word through stages in order. Each stage fires at most
// one rule and no stage is visited twice.
func runStages(word string, stages []Stage, rec *recorder) string {
	marked := false
	for _, st := range stages {
		if st.AfterMark && !marked {
			continue
		}
		next, rule, fired := applyStage(word, st)
		marked = fired && rule.Mark
		if fired && next != word {
			rec.record(st.Name, rule, word, next)
			word = next
		}
	}
	return word
}

// applyStage fires the first rule of st whose suffix matches and whose
// condition holds. A Stop rule that matches by suffix alone ends the stage.
func applyStage(word string, st Stage) (string, Rule, bool) {
	for _, r := range st.Rules {
		stem, ok := r.matches(word, 0)
		if !ok {
			continue
		}
		if r.Condition.Check(word, r.Suffix, stem) {
			return stem + r.Replacement, r, true
		}
		if r.Stop {
			break
		}
	}
	return word, Rule{}, false
}

// replace builds rules from suffix/replacement pairs sharing one condition
func replace(cond Condition, pairs ...string) []Rule {
	out := make([]Rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Rule{Suffix: pairs[i], Replacement: pairs[i+1], Condition: cond})
	}
	return out
}

// strip builds deletion rules sharing one condition
func strip(cond Condition, suffixes ...string) []Rule {
	out := make([]Rule, 0, len(suffixes))
	for _, s := range suffixes {
		out = append(out, Rule{Suffix: s, Condition: cond})
	}
	return out
}

// undoubleRules drops one letter of a doubled final consonant other than
// l, s and z.
func undoubleRules() []Rule {
	var out []Rule
	for c := byte('b'); c <= 'z'; c++ {
		if isLetterVowel(c) || c == 'l' || c == 's' || c == 'z' {
			continue
		}
		out = append(out, Rule{
			Suffix:      string([]byte{c, c}),
			Replacement: string(c),
			Condition: custom(func(word, _ string) bool {
				return EndsDoubleConsonant(word)
			}),
		})
	}
	return out
}

// fixupStage restores letters lost by stripping ed/ing: at, bl and iz get
// their e back, doubled consonants are undoubled, and short words get an e.
func fixupStage(short func(string) bool) Stage {
	rules := replace(always, "at", "ate", "bl", "ble", "iz", "ize")
	for i := range rules {
		// "ating" leaves just "at", which still takes its e
		rules[i].Whole = true
	}
	rules = append(rules, undoubleRules()...)
	rules = append(rules, Rule{
		Suffix:      "",
		Replacement: "e",
		Condition: custom(func(word, _ string) bool {
			return short(word)
		}),
	})
	return Stage{Name: "1b-fixup", Rules: rules, AfterMark: true}
}

// isShort is measure one ending in a CVC
func isShort(word string) bool {
	return Measure(word) == 1 && EndsCVC(word)
}

func stemEndsIn(stem string, letters string) bool {
	if stem == "" {
		return false
	}
	last := stem[len(stem)-1]
	for i := 0; i < len(letters); i++ {
		if letters[i] == last {
			return true
		}
	}
	return false
}
