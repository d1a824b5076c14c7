package view

// Element ids of the quiz chrome.
const (
	ContainerID    = "quiz-container"
	AltContainerID = "questions-container"
	SubmitID       = "submitBtn"
	ResultsID      = "results"
	ScoreID        = "scoreDisplay"
	FeedbackID     = "feedback"
	RetakeID       = "retake"
	BackID         = "back"
)

// ContainerElement is the wrapper created when the host has no container.
func ContainerElement() Element {
	return Element{
		Tag:     "div",
		Classes: []string{"quiz-wrapper"},
		Children: []Element{
			{Tag: "div", ID: ContainerID},
		},
	}
}

// SubmitElement is the submit control created when the host has none.
func SubmitElement() Element {
	return Element{
		Tag:     "div",
		Classes: []string{"submit-container"},
		Children: []Element{
			{Tag: "button", ID: SubmitID, Classes: []string{"btn"}, Text: "Submit Quiz"},
		},
	}
}

// ResultsElement is the results area created on the first submission.
func ResultsElement() Element {
	return Element{
		Tag:     "div",
		ID:      ResultsID,
		Classes: []string{"results"},
		Children: []Element{
			{Tag: "div", ID: ScoreID, Classes: []string{"score"}},
			{Tag: "div", ID: FeedbackID, Classes: []string{"feedback"}},
			{
				Tag:     "div",
				Classes: []string{"results-buttons"},
				Children: []Element{
					{Tag: "button", ID: RetakeID, Classes: []string{"btn"}, Text: "Retake Quiz"},
					{Tag: "button", ID: BackID, Classes: []string{"btn"}, Text: "Back to Module"},
				},
			},
		},
	}
}
