package question

// Source constants identify where a question came from.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// DefaultCount is used when a request does not ask for a positive count.
const DefaultCount = 5

// Question is one multiple-choice item. Answer always equals one of Options by value.
type Question struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// GenerationRequest describes the quiz a caller wants questions for.
type GenerationRequest struct {
	Grade   string
	Subject string
	Topic   string
	Count   int
}

func (r GenerationRequest) count() int {
	if r.Count <= 0 {
		return DefaultCount
	}
	return r.Count
}

// Valid reports whether q passes the acceptance gate: non-empty text, exactly
// four options and an answer that matches one of them.
func (q Question) Valid() bool {
	if q.Text == "" || len(q.Options) != optionCount || q.Answer == "" {
		return false
	}
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

const optionCount = 4
