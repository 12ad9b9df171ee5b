package stem

// porterStages is the classic five-step pipeline gated on Measure
var porterStages = []Stage{
	{
		Name:  "1a",
		Rules: replace(always, "sses", "ss", "ies", "i", "ss", "ss", "s", ""),
	},
	{
		Name: "1b",
		Rules: []Rule{
			{Suffix: "eed", Replacement: "ee", Condition: measureAbove(0), Stop: true},
			{Suffix: "ed", Condition: hasVowel, Mark: true},
			{Suffix: "ing", Condition: hasVowel, Mark: true},
		},
	},
	fixupStage(isShort),
	{
		Name:  "1c",
		Rules: replace(hasVowel, "y", "i"),
	},
	{
		Name: "2",
		Rules: replace(measureAbove(0),
			"ational", "ate",
			"tional", "tion",
			"enci", "ence",
			"anci", "ance",
			"izer", "ize",
			"abli", "able",
			"alli", "al",
			"entli", "ent",
			"eli", "e",
			"ousli", "ous",
			"ization", "ize",
			"ation", "ate",
			"ator", "ate",
			"alism", "al",
			"iveness", "ive",
			"fulness", "ful",
			"ousness", "ous",
			"aliti", "al",
			"iviti", "ive",
			"biliti", "ble",
			"logi", "log",
		),
	},
	{
		Name: "3",
		Rules: replace(measureAbove(0),
			"icate", "ic",
			"ative", "",
			"alize", "al",
			"iciti", "ic",
			"ical", "ic",
			"ful", "",
			"ness", "",
		),
	},
	{
		Name: "4",
		Rules: concat(
			strip(measureAbove(1),
				"al", "ance", "ence", "er", "ic", "able", "ible", "ant",
				"ement", "ment", "ent"),
			[]Rule{{Suffix: "ion", Condition: custom(porterIon)}},
			strip(measureAbove(1), "ou", "ism", "ate", "iti", "ous", "ive", "ize"),
		),
	},
	{
		Name: "5a",
		Rules: []Rule{{Suffix: "e", Condition: custom(func(_, stem string) bool {
			m := Measure(stem)
			return m > 1 || (m == 1 && !EndsCVC(stem))
		})}},
	},
	{
		Name: "5b",
		Rules: []Rule{{Suffix: "ll", Replacement: "l", Condition: custom(func(word, _ string) bool {
			return Measure(word) > 1
		})}},
	},
}

// porterIon strips -ion only after s or t
func porterIon(_, stem string) bool {
	return Measure(stem) > 1 && stemEndsIn(stem, "st")
}

func concat(groups ...[]Rule) []Rule {
	var out []Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
