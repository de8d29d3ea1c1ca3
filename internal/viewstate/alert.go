package viewstate

// Severity ranks alert messages for styling.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Alert is the single-slot notification region. Showing a message replaces
// whatever was there; every navigation clears it so stale errors never
// outlive the view they belong to.
type Alert struct {
	message  string
	severity Severity
	active   bool
}

// Show replaces the current notification. An empty message clears the slot.
func (a *Alert) Show(message string, severity Severity) {
	if message == "" {
		a.Clear()
		return
	}
	a.message = message
	a.severity = severity
	a.active = true
}

// ShowError replaces the current notification with an error.
func (a *Alert) ShowError(message string) { a.Show(message, SeverityError) }

// ShowWarning replaces the current notification with a warning.
func (a *Alert) ShowWarning(message string) { a.Show(message, SeverityWarning) }

// ShowSuccess replaces the current notification with a confirmation.
func (a *Alert) ShowSuccess(message string) { a.Show(message, SeveritySuccess) }

// ShowInfo replaces the current notification with a neutral note.
func (a *Alert) ShowInfo(message string) { a.Show(message, SeverityInfo) }

// Clear empties the slot.
func (a *Alert) Clear() {
	a.message = ""
	a.severity = SeverityInfo
	a.active = false
}

// Active reports whether a notification is showing.
func (a *Alert) Active() bool { return a.active }

// Message returns the current notification text, "" when inactive.
func (a *Alert) Message() string { return a.message }

// Severity returns the current notification's severity.
func (a *Alert) Severity() Severity { return a.severity }
