package question

import (
	"fmt"
	"strings"
)

// SystemInstruction is sent with every provider call alongside the user prompt.
const SystemInstruction = `You are an expert educator and test designer who writes exam preparation questions for US students.
You always answer with a single JSON array and nothing else: no markdown, no code fences, no commentary.`

// BuildPrompt assembles the user prompt for one batch of count questions.
// variation is a per-call token so parallel batches for the same topic do not
// converge on identical content.
func BuildPrompt(req GenerationRequest, count int, variation string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d challenging, exam-style multiple-choice question(s) for:\n", count)
	fmt.Fprintf(&b, "- Grade Level: %s\n", req.Grade)
	fmt.Fprintf(&b, "- Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "- Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "- Variation: %s (use it to pick a fresh angle; never mention it)\n", variation)

	b.WriteString("\nREQUIREMENTS:\n")
	fmt.Fprintf(&b, "1. Align with %s US curriculum standards (Common Core, NGSS, C3).\n", req.Grade)
	b.WriteString("2. Match the difficulty of real standardized tests for this grade level.\n")
	b.WriteString("3. Test conceptual understanding and application, not trivial recall.\n")
	b.WriteString("4. Use real-world scenarios where they fit the topic.\n")
	b.WriteString("5. Wrong options must be plausible misconceptions students actually have.\n")
	b.WriteString("6. Exactly 4 distinct options per question; exactly one is correct.\n")

	b.WriteString("\nMATH FORMATTING (LaTeX):\n")
	b.WriteString("- Inline math in single dollar signs: $x^2$\n")
	b.WriteString("- Display math in double dollar signs: $$\\\\frac{a}{b}$$\n")
	b.WriteString("- Fractions: \\\\frac{numerator}{denominator}, always with braces, e.g. $\\\\frac{3}{4}$\n")
	b.WriteString("- Exponents with ^ ($10^3$), subscripts with _ ($H_2O$)\n")
	b.WriteString("- Roots: \\\\sqrt{16}; multiplication: \\\\cdot; division: \\\\div; not equal: \\\\neq\n")
	b.WriteString("- Every backslash must be doubled in the JSON text (write \\\\frac, not \\frac) so the output stays valid JSON.\n")

	b.WriteString("\nOUTPUT: return ONLY a JSON array shaped like this:\n")
	b.WriteString(`[
  {
    "question": "Clear, specific question text?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "answer": "The correct option, copied exactly from options",
    "explanation": "Why this answer is correct and which concept it tests"
  }
]`)
	b.WriteString("\n")

	return b.String()
}
