package question

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackMultiplicationForYoungerGrades(t *testing.T) {
	gen := NewFallbackGenerator(NewRandom(1))

	for i := 0; i < 200; i++ {
		q := gen.Generate("Grade 3", "Math", "Multiplication")

		var n1, n2 int
		_, err := fmt.Sscanf(q.Text, "Calculate: $%d \\times %d$", &n1, &n2)
		require.NoError(t, err, q.Text)
		assert.GreaterOrEqual(t, n1, 2)
		assert.LessOrEqual(t, n1, 10)
		assert.GreaterOrEqual(t, n2, 2)
		assert.LessOrEqual(t, n2, 10)
		assert.Equal(t, strconv.Itoa(n1*n2), q.Answer)
		assertNumericOptions(t, q)
		assert.Equal(t, FallbackMathExplanation, q.Explanation)
		assert.Equal(t, SourceFallback, q.Source)
	}
}

func TestFallbackLinearEquationForAdvancedGrades(t *testing.T) {
	gen := NewFallbackGenerator(NewRandom(2))

	for _, tc := range []struct{ grade, topic string }{
		{"Grade 8", "Geometry"},
		{"Grade 12", "Statistics"},
		{"Grade 2", "Intro to Algebra"},
	} {
		for i := 0; i < 100; i++ {
			q := gen.Generate(tc.grade, "Math", tc.topic)

			var a, b, c int
			_, err := fmt.Sscanf(q.Text, "Solve for $x$: $%dx + %d = %d$", &a, &b, &c)
			require.NoError(t, err, q.Text)
			x, err := strconv.Atoi(q.Answer)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, x, 1)
			assert.LessOrEqual(t, x, 10)
			assert.GreaterOrEqual(t, a, 2)
			assert.LessOrEqual(t, a, 5)
			assert.GreaterOrEqual(t, b, 1)
			assert.LessOrEqual(t, b, 20)
			assert.Equal(t, c, a*x+b)
			assertNumericOptions(t, q)
		}
	}
}

func TestFallbackGenericQuestion(t *testing.T) {
	gen := NewFallbackGenerator(NewRandom(3))

	q := gen.Generate("Grade 4", "Science", "Ecosystems")

	assert.Equal(t, "Which of the following is a key concept in Grade 4 Science - Ecosystems?", q.Text)
	assert.ElementsMatch(t, []string{"Critical Thinking", "Rote Memorization", "Random Guessing", "Ignoring Facts"}, q.Options)
	assert.Equal(t, "Critical Thinking", q.Answer)
	assert.Equal(t, FallbackGenericExplanation, q.Explanation)
	assert.True(t, q.Valid())
}

func TestFallbackSubjectMatchIsExact(t *testing.T) {
	gen := NewFallbackGenerator(NewRandom(4))

	q := gen.Generate("Grade 3", "math", "Multiplication")
	assert.True(t, strings.HasPrefix(q.Text, "Which of the following"))
}

func TestFallbackGenerateN(t *testing.T) {
	gen := NewFallbackGenerator(NewRandom(5))

	qs := gen.GenerateN(GenerationRequest{Grade: "Grade 6", Subject: "History", Topic: "Ancient Civilizations", Count: 7})
	assert.Len(t, qs, 7)

	qs = gen.GenerateN(GenerationRequest{Grade: "Grade 6", Subject: "History", Topic: "Ancient Civilizations"})
	assert.Len(t, qs, DefaultCount)
}

func TestFallbackSeededRunsRepeat(t *testing.T) {
	req := GenerationRequest{Grade: "Grade 5", Subject: "Math", Topic: "Fractions", Count: 10}

	first := NewFallbackGenerator(NewRandom(99)).GenerateN(req)
	second := NewFallbackGenerator(NewRandom(99)).GenerateN(req)

	assert.Equal(t, first, second)
}

func TestParseGradeLevel(t *testing.T) {
	cases := map[string]int{
		"Grade 1":  1,
		"Grade 7":  7,
		"Grade 12": 12,
		"10":       10,
		"Grade 0":  5,
		"AP":       5,
		"":         5,
		"Grade 9+": 9,
	}
	for label, want := range cases {
		assert.Equal(t, want, ParseGradeLevel(label), label)
	}
}

func assertNumericOptions(t *testing.T, q Question) {
	t.Helper()
	require.Len(t, q.Options, 4)
	assert.True(t, q.Valid())

	answer, err := strconv.Atoi(q.Answer)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, opt := range q.Options {
		assert.False(t, seen[opt], "duplicate option %s", opt)
		seen[opt] = true

		v, err := strconv.Atoi(opt)
		require.NoError(t, err)
		assert.Greater(t, v, 0)
		assert.LessOrEqual(t, v-answer, 5)
		assert.GreaterOrEqual(t, v-answer, -5)
	}
}

// checkMultiplication verifies a "Calculate: $a \times b$" item and its answer.
func checkMultiplication(q Question) error {
	var n1, n2 int
	if _, err := fmt.Sscanf(q.Text, "Calculate: $%d \\times %d$", &n1, &n2); err != nil {
		return fmt.Errorf("%q is not a multiplication: %w", q.Text, err)
	}
	if q.Answer != strconv.Itoa(n1*n2) {
		return fmt.Errorf("%q answered %q", q.Text, q.Answer)
	}
	return nil
}

// checkLinearEquation verifies an "$ax + b = c$" item is solved by its answer.
func checkLinearEquation(q Question) error {
	var a, b, c int
	if _, err := fmt.Sscanf(q.Text, "Solve for $x$: $%dx + %d = %d$", &a, &b, &c); err != nil {
		return fmt.Errorf("%q is not a linear equation: %w", q.Text, err)
	}
	x, err := strconv.Atoi(q.Answer)
	if err != nil {
		return fmt.Errorf("%q has non-numeric answer %q", q.Text, q.Answer)
	}
	if a*x+b != c {
		return fmt.Errorf("%q is not solved by x=%d", q.Text, x)
	}
	return nil
}

func TestGenerateGrade3ArithmeticWithoutCredential(t *testing.T) {
	svc := newTestService(nil, ServiceOptions{})

	qs := svc.Generate(context.Background(), GenerationRequest{Grade: "Grade 3", Subject: "Math", Topic: "Arithmetic", Count: 5})

	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.NoError(t, checkMultiplication(q))
		assert.True(t, q.Valid())
		assert.Equal(t, SourceFallback, q.Source)
	}
}

func TestGenerateGrade9AlgebraWithoutCredential(t *testing.T) {
	svc := newTestService(nil, ServiceOptions{})

	qs := svc.Generate(context.Background(), GenerationRequest{Grade: "Grade 9", Subject: "Math", Topic: "Algebra I", Count: 3})

	require.Len(t, qs, 3)
	for _, q := range qs {
		assert.NoError(t, checkLinearEquation(q))
		assert.True(t, q.Valid())
		assert.Equal(t, SourceFallback, q.Source)
	}
}

func TestNumericOptionsSmallestAnswer(t *testing.T) {
	gen := NewFallbackGenerator(NewRandom(3))

	for i := 0; i < 100; i++ {
		opts := gen.numericOptions(1)
		require.Len(t, opts, 4)
		assert.Equal(t, "1", opts[0])

		seen := map[string]bool{}
		for _, opt := range opts {
			assert.False(t, seen[opt], "duplicate option %s", opt)
			seen[opt] = true
			v, err := strconv.Atoi(opt)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, 6)
		}
	}
}
