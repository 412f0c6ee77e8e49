package shared

import "net/http"

// ConfirmField is the form field a confirmation dialog submits.
const ConfirmField = "confirm"

// ConfirmDialog describes a server-rendered confirmation step shown before a
// destructive action. Submitting Action with confirm=yes accepts it; the
// cancel link returns to CancelURL untouched.
type ConfirmDialog struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
	Confirm   string
}

// NewConfirmDialog builds a dialog with the default "Delete" button label.
func NewConfirmDialog(title, message, action, cancelURL string) ConfirmDialog {
	return ConfirmDialog{Title: title, Message: message, Action: action, CancelURL: cancelURL, Confirm: "Delete"}
}

// Confirmed reports whether the submitted form accepted the dialog.
func Confirmed(r *http.Request) bool {
	return r.PostFormValue(ConfirmField) == "yes"
}
