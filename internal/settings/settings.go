// Package settings stores the single application-wide settings record:
// the credit grant handed to new signups and the maintenance switch.
package settings

// Settings is a singleton; the repositories read and write one fixed row.
type Settings struct {
	SignupCredits   int64
	MaintenanceMode bool
}
