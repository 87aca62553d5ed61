package domain

// FieldErrors maps a payload field name to its ordered violation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// WorkflowResult is the outcome of a registration submission. A failed
// result carries either field errors or a single top-level message.
type WorkflowResult struct {
	Success          bool        `json:"success"`
	Message          string      `json:"message"`
	RegistrationID   string      `json:"id,omitempty"`
	ConfirmationSent bool        `json:"confirmationSent,omitempty"`
	Errors           FieldErrors `json:"errors,omitempty"`
}

// PassResult is the outcome of an on-demand pass send.
type PassResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
