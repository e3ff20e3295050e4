// Package tracker decides whether a check result is worth announcing.
package tracker

import "github.com/hamed0406/statuswatch/internal/domain"

// Evaluate folds one check result into the monitor state.
//
// shouldNotify is true when the observed status differs from the last
// announced one. LastAnnounced starts out Unknown, so the first result is
// always announced whatever its status. Current always follows the result;
// LastAnnounced only moves when a notification is due.
func Evaluate(result domain.CheckResult, state domain.MonitorState) (domain.MonitorState, bool) {
	observed := result.Status
	if observed != domain.StatusHealthy {
		observed = domain.StatusUnhealthy
	}

	shouldNotify := state.LastAnnounced == domain.StatusUnknown || observed != state.LastAnnounced

	next := domain.MonitorState{Current: observed, LastAnnounced: state.LastAnnounced}
	if shouldNotify {
		next.LastAnnounced = observed
	}
	return next, shouldNotify
}
