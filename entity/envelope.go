package entity

// Envelope is the gateway response wrapper: every reply carries a single
// "response" object whose field set depends on the operation.
type Envelope struct {
	Response map[string]any `json:"response"`
}

// Status returns the response_status field, empty when absent.
func (e *Envelope) Status() string {
	return e.stringField("response_status")
}

// ErrorMessage returns the gateway error text, empty when the reply is not an error.
func (e *Envelope) ErrorMessage() string {
	return e.stringField("error_message")
}

// Field extracts a named string field out of the response object.
func (e *Envelope) Field(name string) (string, bool) {
	if e == nil || e.Response == nil {
		return "", false
	}
	value, ok := e.Response[name]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (e *Envelope) stringField(name string) string {
	s, _ := e.Field(name)
	return s
}
