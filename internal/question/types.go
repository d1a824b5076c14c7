package question

// DefaultExplanation is shown when a record carries no explanation.
const DefaultExplanation = "No explanation provided."

// Record is one multiple-choice quiz item. Options are identified by index.
type Record struct {
	Prompt      string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	Correct     int      `json:"correct" yaml:"correct"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// ExplanationOr returns the record explanation or the placeholder when it is empty.
func (r Record) ExplanationOr(placeholder string) string {
	if r.Explanation != "" {
		return r.Explanation
	}
	if placeholder != "" {
		return placeholder
	}
	return DefaultExplanation
}

// HasValidCorrect reports whether Correct indexes one of the options.
func (r Record) HasValidCorrect() bool {
	return r.Correct >= 0 && r.Correct < len(r.Options)
}
