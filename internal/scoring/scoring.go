// Package scoring grades a submitted quiz session.
package scoring

import (
	"fmt"

	"quizkit/internal/session"
)

// Tier is a named feedback bucket with its minimum percentage.
type Tier struct {
	Name    string
	Min     int
	Message string
}

// Tiers in descending order of Min. The last tier catches everything.
var Tiers = []Tier{
	{Name: "excellent", Min: 90, Message: "Excellent work!"},
	{Name: "very good", Min: 80, Message: "Very good."},
	{Name: "good effort", Min: 70, Message: "Good effort."},
	{Name: "fair", Min: 60, Message: "Fair performance."},
	{Name: "needs more study", Min: 0, Message: "Additional study is recommended."},
}

// Outcome is the graded state of one presentation position.
type Outcome struct {
	Position  int
	Original  int
	Selected  int
	Correct   int
	IsCorrect bool
}

// Result is the graded quiz.
type Result struct {
	Score      int
	Total      int
	Percentage int
	Tier       Tier
	Outcomes   []Outcome
}

// Evaluate compares each selection against the correct option of the entry
// at the same position.
func Evaluate(entries []session.Entry, selections []int) Result {
	result := Result{Total: len(entries), Outcomes: make([]Outcome, 0, len(entries))}
	for position, entry := range entries {
		selected := session.Unanswered
		if position < len(selections) {
			selected = selections[position]
		}
		outcome := Outcome{
			Position:  position,
			Original:  entry.Original,
			Selected:  selected,
			Correct:   entry.Record.Correct,
			IsCorrect: selected != session.Unanswered && selected == entry.Record.Correct,
		}
		if outcome.IsCorrect {
			result.Score++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	result.Percentage = Percentage(result.Score, result.Total)
	result.Tier = TierFor(result.Percentage)
	return result
}

// Percentage returns round(100*score/total), rounding halves up.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}

// TierFor returns the highest tier whose minimum the percentage reaches.
func TierFor(percentage int) Tier {
	for _, tier := range Tiers {
		if percentage >= tier.Min {
			return tier
		}
	}
	return Tiers[len(Tiers)-1]
}

// Summary formats the score as "score/total (percentage%)".
func (r Result) Summary() string {
	return fmt.Sprintf("%d/%d (%d%%)", r.Score, r.Total, r.Percentage)
}
