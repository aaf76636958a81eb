package question

import (
	"fmt"
	"strconv"
	"strings"
)

// Explanations attached to fallback questions. Callers can tell fallback items
// apart from live ones only by these strings (or by Source).
const (
	FallbackMathExplanation    = "This is a generated practice question."
	FallbackGenericExplanation = "Critical thinking is essential for understanding this subject."
)

const (
	defaultGradeLevel   = 5
	advancedAboveGrade  = 5
	basicOperandMax     = 10
	advancedOperandMax  = 20
	maxDistractorOffset = 5

	genericAnswer = "Critical Thinking"
)

var genericOptions = []string{genericAnswer, "Rote Memorization", "Random Guessing", "Ignoring Facts"}

// FallbackGenerator builds questions locally without any network call.
type FallbackGenerator struct {
	rng *Random
}

// NewFallbackGenerator returns a generator drawing from rng. A nil rng gets an
// entropy-seeded source.
func NewFallbackGenerator(rng *Random) *FallbackGenerator {
	if rng == nil {
		rng = NewUnseededRandom()
	}
	return &FallbackGenerator{rng: rng}
}

// Generate returns one question for the grade/subject/topic. It never fails.
func (g *FallbackGenerator) Generate(grade, subject, topic string) Question {
	if subject != "Math" {
		return g.generic(grade, subject, topic)
	}
	return g.math(ParseGradeLevel(grade), topic)
}

// GenerateN returns req.Count fallback questions (DefaultCount when unset).
func (g *FallbackGenerator) GenerateN(req GenerationRequest) []Question {
	out := make([]Question, req.count())
	for i := range out {
		out[i] = g.Generate(req.Grade, req.Subject, req.Topic)
	}
	return out
}

func (g *FallbackGenerator) math(level int, topic string) Question {
	advanced := level > advancedAboveGrade
	operandMax := basicOperandMax
	if advanced {
		operandMax = advancedOperandMax
	}

	var (
		text   string
		answer int
	)
	if strings.Contains(topic, "Algebra") || advanced {
		x := g.rng.IntRange(1, 10)
		a := g.rng.IntRange(2, 5)
		b := g.rng.IntRange(1, 20)
		c := a*x + b
		text = fmt.Sprintf("Solve for $x$: $%dx + %d = %d$", a, b, c)
		answer = x
	} else {
		n1 := g.rng.IntRange(2, operandMax)
		n2 := g.rng.IntRange(2, operandMax)
		text = fmt.Sprintf("Calculate: $%d \\times %d$", n1, n2)
		answer = n1 * n2
	}

	return Question{
		Text:        text,
		Options:     g.rng.Shuffle(g.numericOptions(answer)),
		Answer:      strconv.Itoa(answer),
		Explanation: FallbackMathExplanation,
		Source:      SourceFallback,
	}
}

// numericOptions returns the answer plus three distinct positive distractors
// within maxDistractorOffset of it. answer >= 1 leaves at least five
// candidates above it, so the loop always terminates.
func (g *FallbackGenerator) numericOptions(answer int) []string {
	seen := map[int]bool{answer: true}
	opts := []string{strconv.Itoa(answer)}
	for len(opts) < optionCount {
		v := answer + g.rng.IntRange(-maxDistractorOffset, maxDistractorOffset)
		if v <= 0 || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, strconv.Itoa(v))
	}
	return opts
}

func (g *FallbackGenerator) generic(grade, subject, topic string) Question {
	return Question{
		Text:        fmt.Sprintf("Which of the following is a key concept in %s %s - %s?", grade, subject, topic),
		Options:     g.rng.Shuffle(genericOptions),
		Answer:      genericAnswer,
		Explanation: FallbackGenericExplanation,
		Source:      SourceFallback,
	}
}

// ParseGradeLevel extracts the numeric level from labels like "Grade 7".
// Labels without a leading number ("AP") and zero map to the default level 5.
func ParseGradeLevel(grade string) int {
	s := strings.TrimSpace(grade)
	s = strings.TrimSpace(strings.TrimPrefix(s, "Grade"))
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return defaultGradeLevel
	}
	return n
}
