package stem

// MaxIterations caps the Lancaster passes so a cyclic table still halts
const MaxIterations = 100

// lancasterMinStem is the shortest stem a Lancaster rule may leave
const lancasterMinStem = 2

// lancasterRules is scanned from the top on every pass. Earlier entries win,
// so the single-letter and doubled-letter rules shadow most of the long
// derivational endings further down; the order is the behaviour.
var lancasterRules = concat(
	strip(hasVowel, "ia", "a"),
	replace(always,
		"bb", "b",
		"cy", "c",
		"dd", "d",
		"ee", "e",
		"ff", "f",
		"gg", "g",
		"gh", "h",
	),
	strip(hasVowel, "ic"),
	replace(hasVowel, "ied", "y", "ier", "y", "ies", "y", "ily", "y"),
	strip(hasVowel, "ing", "iingly", "ingly", "inly", "ion", "ly"),
	replace(always,
		"mm", "m",
		"nn", "n",
		"pp", "p",
		"rr", "r",
		"ss", "s",
		"tt", "t",
	),
	replace(hasVowel, "ui", "u"),
	strip(hasVowel, "us", "um"),
	replace(always, "vv", "v", "zz", "z"),

	strip(hasVowel,
		"al", "ance", "ant", "ary", "ate", "ed", "ence", "ent", "ery",
		"ful", "ible", "ical", "ify", "ine", "ise", "ish", "ism", "ist",
		"ite", "ity", "ive", "ize", "less", "ment", "ness", "ous", "ship",
		"sion", "tion", "ure", "y",
	),

	strip(hasVowel,
		"able", "age", "ally", "ation", "ative", "ator", "atory",
		"edly", "edness", "ee", "eer", "ency", "ently", "er", "es", "est",
		"fully", "ibly", "ically",
		"ional", "ionally", "ioned", "ioner", "ioning", "ions",
		"ious", "iously",
		"ised", "iser", "ises", "ising",
		"istic", "istically", "ists",
		"ited", "itely", "ites", "iting",
		"ition", "itional", "itionally", "itions", "itive", "itively",
		"ively", "iveness", "ivity",
		"ized", "izer", "izers", "izes", "izing",
		"lessly", "lessness",
		"mental", "mentally", "mented", "menting", "ments",
		"nesses", "ously", "ousness", "ships",
		"sional", "sionally", "sioned", "sioner", "sioning", "sions",
		"tional", "tionally", "tioned", "tioner", "tioning", "tions",
		"tious", "tiously",
		"ured", "ures", "uring",
	),
)

// lancasterCleanup runs once the table is exhausted: a final e goes, or a
// consonant-preceded final y turns into i, on words longer than three.
var lancasterCleanup = Stage{
	Name: "cleanup",
	Rules: []Rule{
		{Suffix: "e", Condition: custom(func(word, stem string) bool {
			return len(word) > 3 && ContainsVowel(stem)
		})},
		{Suffix: "y", Replacement: "i", Condition: custom(func(word, _ string) bool {
			return len(word) > 3 && IsConsonant(word, len(word)-2)
		})},
	},
}

// firstEligible returns the result of the first applicable rule
func firstEligible(word string, rules []Rule, minStem int) (string, Rule, bool) {
	for _, r := range rules {
		if next, ok := r.Apply(word, minStem); ok {
			return next, r, true
		}
	}
	return word, Rule{}, false
}

// runFixpoint applies rules restart-from-the-top until nothing fires. When
// the table is exhausted the cleanup stage gets a turn; if it changes the
// word, scanning resumes, so the result is a fixpoint of both. The pass
// counter bounds the whole loop.
func runFixpoint(word string, rules []Rule, rec *recorder) string {
	changed := true
	for pass := 0; changed && pass < MaxIterations; pass++ {
		changed = false
		if next, rule, ok := firstEligible(word, rules, lancasterMinStem); ok {
			rec.record("lancaster", rule, word, next)
			word, changed = next, true
			continue
		}
		if next, rule, ok := applyStage(word, lancasterCleanup); ok {
			rec.record(lancasterCleanup.Name, rule, word, next)
			word, changed = next, true
		}
	}
	return word
}
