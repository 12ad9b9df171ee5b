package stem

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleApply(t *testing.T) {
	rule := Rule{Suffix: "ing", Condition: always}

	got, ok := rule.Apply("jumping", 0)
	assert.True(t, ok)
	assert.Equal(t, "jump", got)

	// word must be strictly longer than the suffix
	got, ok = rule.Apply("ing", 0)
	assert.False(t, ok)
	assert.Equal(t, "ing", got)

	// minimum stem length
	_, ok = rule.Apply("sing", 2)
	assert.False(t, ok)
	_, ok = rule.Apply("bring", 2)
	assert.True(t, ok)

	_, ok = rule.Apply("jumped", 0)
	assert.False(t, ok)
}

func TestRuleApplyWhole(t *testing.T) {
	rule := Rule{Suffix: "at", Replacement: "ate", Condition: always, Whole: true}

	got, ok := rule.Apply("at", 0)
	assert.True(t, ok)
	assert.Equal(t, "ate", got)

	got, ok = rule.Apply("conflat", 0)
	assert.True(t, ok)
	assert.Equal(t, "conflate", got)

	_, ok = rule.Apply("a", 0)
	assert.False(t, ok)
	_, ok = rule.Apply("at", 1)
	assert.False(t, ok)
}

func TestConditionCheck(t *testing.T) {
	tests := []struct {
		name   string
		cond   Condition
		word   string
		suffix string
		want   bool
	}{
		{"always", always, "xyz", "z", true},
		{"vowel present", hasVowel, "jumping", "ing", true},
		{"vowel absent", hasVowel, "thing", "ing", false},
		{"suffix in r1", inR1, "national", "al", true},
		{"suffix outside r1", inR1, "national", "ational", false},
		{"suffix in r2", inR2, "national", "al", true},
		{"suffix outside r2", inR2, "nation", "ion", false},
		{"measure above zero", measureAbove(0), "relational", "ational", true},
		{"measure not above zero", measureAbove(0), "national", "ational", false},
		{"custom", custom(func(_, stem string) bool { return stem == "ab" }), "abc", "c", true},
		{"custom without predicate", Condition{Kind: Custom}, "abc", "c", false},
		{"unknown kind", Condition{Kind: ConditionKind(42)}, "abc", "c", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem := strings.TrimSuffix(tt.word, tt.suffix)
			assert.Equal(t, tt.want, tt.cond.Check(tt.word, tt.suffix, stem))
		})
	}
}

func TestConditionKindString(t *testing.T) {
	assert.Equal(t, "always", Always.String())
	assert.Equal(t, "vowel", StemHasVowel.String())
	assert.Equal(t, "r1", SuffixInR1.String())
	assert.Equal(t, "r2", SuffixInR2.String())
	assert.Equal(t, "measure", MeasureAbove.String())
	assert.Equal(t, "custom", Custom.String())
	assert.Equal(t, "unknown", ConditionKind(-1).String())
}

func TestApplyStageFirstEligibleWins(t *testing.T) {
	st := Stage{Name: "test", Rules: []Rule{
		{Suffix: "ational", Replacement: "ate", Condition: measureAbove(0)},
		{Suffix: "al", Condition: always},
	}}

	// ational fails its condition so the next candidate gets its chance
	got, rule, fired := applyStage("national", st)
	require.True(t, fired)
	assert.Equal(t, "al", rule.Suffix)
	assert.Equal(t, "nation", got)

	got, rule, fired = applyStage("relational", st)
	require.True(t, fired)
	assert.Equal(t, "ational", rule.Suffix)
	assert.Equal(t, "relate", got)
}

func TestApplyStageStopRule(t *testing.T) {
	// "feed" matches eed, fails the measure and must not fall through to ed
	stage := porterStages[1]
	require.Equal(t, "1b", stage.Name)

	got, _, fired := applyStage("feed", stage)
	assert.False(t, fired)
	assert.Equal(t, "feed", got)
}

func TestFixupRunsOnlyAfterMarkedRule(t *testing.T) {
	// agreed loses d through eed -> ee, which is not marked; an "at" ending
	// produced by a plain stage must not grow an e either
	_, steps := Trace("agreed", Porter)
	_, fixed := After(steps, "1b-fixup")
	assert.False(t, fixed)

	_, steps = Trace("conflated", Porter)
	after, fixed := After(steps, "1b-fixup")
	assert.True(t, fixed)
	assert.Equal(t, "conflate", after)
}

func allTables() map[string][]Stage {
	return map[string][]Stage{
		"porter":    porterStages,
		"snowball":  snowballStages,
		"lancaster": {{Name: "lancaster", Rules: lancasterRules}, lancasterCleanup},
	}
}

func randomWord(rng *rand.Rand) string {
	const letters = "abcdefghijklmnopqrstuvwxyz'"
	suffixes := []string{"", "s", "es", "ies", "ed", "ing", "ly", "ness", "ation", "ational", "ment", "ful", "ll", "e", "y", "'s"}
	n := rng.Intn(9)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(letters[rng.Intn(len(letters))])
	}
	b.WriteString(suffixes[rng.Intn(len(suffixes))])
	return b.String()
}

func TestRulesStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := make([]string, 2000)
	for i := range words {
		words[i] = randomWord(rng)
	}

	for name, stages := range allTables() {
		minStem := 0
		if name == "lancaster" {
			minStem = lancasterMinStem
		}
		for _, st := range stages {
			for _, rule := range st.Rules {
				for _, word := range words {
					var (
						got string
						ok  bool
					)
					require.NotPanics(t, func() { got, ok = rule.Apply(word, minStem) }, "%s/%s %q on %q", name, st.Name, rule.Suffix, word)
					if !ok {
						assert.Equal(t, word, got)
						continue
					}
					stemLen := len(word) - len(rule.Suffix)
					assert.GreaterOrEqual(t, stemLen, minStem)
					assert.Equal(t, stemLen+len(rule.Replacement), len(got))
					assert.True(t, strings.HasSuffix(got, rule.Replacement))
				}
			}
		}
	}
}

func TestLancasterRulesShrink(t *testing.T) {
	// every rule shortens the word, which rules out cycles
	for _, rule := range lancasterRules {
		assert.Less(t, len(rule.Replacement), len(rule.Suffix), "rule %q -> %q", rule.Suffix, rule.Replacement)
	}
	for _, rule := range lancasterCleanup.Rules {
		assert.LessOrEqual(t, len(rule.Replacement), len(rule.Suffix))
	}
}

func TestLancasterRulesHaveNoExactDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range lancasterRules {
		key := rule.Suffix + ">" + rule.Replacement + ">" + rule.Condition.Kind.String()
		assert.False(t, seen[key], "duplicate rule %q", key)
		seen[key] = true
	}
}
