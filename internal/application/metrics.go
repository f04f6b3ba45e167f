package application

import "expvar"

// Served at /api/debug/vars.
var (
	applicationsSubmitted = expvar.NewInt("applications_submitted")
	statusChanges         = expvar.NewInt("application_status_changes")
	postingsCreated       = expvar.NewInt("internships_created")
)
