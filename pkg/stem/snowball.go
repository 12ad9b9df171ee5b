package stem

// snowballStages is the Porter2 pipeline: an apostrophe stage up front and
// R1/R2 gating from step 2 on.
var snowballStages = []Stage{
	{
		Name:  "0",
		Rules: strip(always, "'s'", "'s", "'"),
	},
	{
		Name: "1a",
		Rules: concat(
			replace(always, "sses", "ss"),
			[]Rule{
				{Suffix: "ied", Replacement: "i", Condition: custom(longStem)},
				{Suffix: "ied", Replacement: "ie", Condition: always},
				{Suffix: "ies", Replacement: "i", Condition: custom(longStem)},
				{Suffix: "ies", Replacement: "ie", Condition: always},
			},
			replace(always, "us", "us", "ss", "ss"),
			strip(hasVowel, "s"),
		),
	},
	{
		Name: "1b",
		Rules: []Rule{
			{Suffix: "eedly", Replacement: "ee", Condition: inR1, Stop: true},
			{Suffix: "eed", Replacement: "ee", Condition: inR1, Stop: true},
			{Suffix: "edly", Condition: hasVowel, Mark: true},
			{Suffix: "ingly", Condition: hasVowel, Mark: true},
			{Suffix: "ed", Condition: hasVowel, Mark: true},
			{Suffix: "ing", Condition: hasVowel, Mark: true},
		},
	},
	fixupStage(isShort),
	{
		Name: "1c",
		Rules: []Rule{{Suffix: "y", Replacement: "i", Condition: custom(func(word, _ string) bool {
			return IsConsonant(word, len(word)-2)
		})}},
	},
	{
		Name: "2",
		Rules: concat(
			replace(inR1,
				"ization", "ize",
				"ational", "ate",
				"fulness", "ful",
				"ousness", "ous",
				"iveness", "ive",
				"tional", "tion",
				"biliti", "ble",
				"lessli", "less",
				"entli", "ent",
				"ation", "ate",
				"alism", "al",
				"aliti", "al",
				"ousli", "ous",
				"iviti", "ive",
				"fulli", "ful",
				"enci", "ence",
				"anci", "ance",
				"abli", "able",
				"izer", "ize",
				"ator", "ate",
				"alli", "al",
				"bli", "ble",
				"ogi", "og",
			),
			[]Rule{{Suffix: "li", Condition: custom(validLi)}},
		),
	},
	{
		Name: "3",
		Rules: replace(inR1,
			"ational", "ate",
			"tional", "tion",
			"alize", "al",
			"icate", "ic",
			"iciti", "ic",
			"ical", "ic",
			"ful", "",
			"ness", "",
		),
	},
	{
		Name: "4",
		Rules: concat(
			strip(inR2,
				"al", "ance", "ence", "er", "ic", "able", "ible", "ant",
				"ement", "ment", "ent", "ism", "ate", "iti", "ous", "ive", "ize"),
			[]Rule{{Suffix: "ion", Condition: custom(func(word, stem string) bool {
				return InR2(word, "ion") && stemEndsIn(stem, "st")
			})}},
		),
	},
	{
		Name: "5a",
		Rules: []Rule{{Suffix: "e", Condition: custom(func(word, stem string) bool {
			return InR2(word, "e") || (InR1(word, "e") && !EndsCVC(stem))
		})}},
	},
	{
		Name: "5b",
		Rules: []Rule{{Suffix: "ll", Replacement: "l", Condition: custom(func(word, _ string) bool {
			return tailInRegion(word, 1, R2)
		})}},
	},
}

// longStem keeps ied/ies -> i for stems longer than one letter; "ties" and
// "dies" become "tie" and "die".
func longStem(_, stem string) bool {
	return len(stem) > 1
}

// validLi allows -li deletion in R1 after one of c d e g h k m n r t
func validLi(word, stem string) bool {
	return InR1(word, "li") && len(stem) >= 3 && stemEndsIn(stem, "cdeghkmnrt")
}
