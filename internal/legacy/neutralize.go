// Package legacy disables the paged quiz UI that older pages still carry.
package legacy

import (
	"fmt"

	"go.uber.org/zap"
)

// Elements and callbacks of the paged quiz UI.
var (
	HiddenClasses = []string{"navigation"}
	HiddenIDs     = []string{"prevBtn", "nextBtn", "timer", "progress"}
	StubCallbacks = []string{"nextQuestion", "previousQuestion", "updateNavigation"}
)

// RestartCallback is kept when the page defines it and added otherwise.
const RestartCallback = "restartQuiz"

// Page hides elements of the host page.
type Page interface {
	// HideID hides the element with id and reports whether it exists.
	HideID(id string) bool
	// HideClass hides every element with class and returns how many matched.
	HideClass(class string) int
}

// Callbacks is the host's table of named global callbacks.
type Callbacks interface {
	Defined(name string) bool
	Define(name string, fn func())
}

// Report lists what Neutralize changed.
type Report struct {
	Hidden           []string
	Stubbed          []string
	RestartPreserved bool
	Err              error
}

// Neutralize hides the paged quiz chrome and replaces its callbacks with
// no-ops. A restart callback the page already defines is kept; otherwise
// restart is defined as reload. Missing elements are ignored and a panic in
// the host is recovered into Report.Err.
func Neutralize(page Page, callbacks Callbacks, reload func(), logger *zap.Logger) (report Report) {
	if logger == nil {
		logger = zap.NewNop()
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			report.Err = fmt.Errorf("neutralize legacy quiz: %v", recovered)
			logger.Debug("legacy neutralizer stopped early", zap.Error(report.Err))
		}
	}()

	if page != nil {
		for _, class := range HiddenClasses {
			if page.HideClass(class) > 0 {
				report.Hidden = append(report.Hidden, "."+class)
			}
		}
		for _, id := range HiddenIDs {
			if page.HideID(id) {
				report.Hidden = append(report.Hidden, "#"+id)
			}
		}
	}

	if callbacks != nil {
		for _, name := range StubCallbacks {
			callbacks.Define(name, func() {})
			report.Stubbed = append(report.Stubbed, name)
		}
		if callbacks.Defined(RestartCallback) {
			report.RestartPreserved = true
		} else {
			if reload == nil {
				reload = func() {}
			}
			callbacks.Define(RestartCallback, reload)
		}
	}

	logger.Debug("legacy quiz neutralized",
		zap.Strings("hidden", report.Hidden),
		zap.Strings("stubbed", report.Stubbed),
		zap.Bool("restart_preserved", report.RestartPreserved),
	)
	return report
}
