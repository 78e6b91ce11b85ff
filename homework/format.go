package homework

import "fmt"

// Update is a rendered status change for the newest homework.
type Update struct {
	Homework Homework
	Message  string
}

// Format renders the status of the first homework in items. It returns ErrNoUpdate
// when items is empty and a *ValidationError when the homework cannot be rendered.
// Unknown status codes fail the cycle instead of producing a partial message.
func Format(items []any) (Update, error) {
	if len(items) == 0 {
		return Update{}, ErrNoUpdate
	}

	hw, err := asHomework(items[0])
	if err != nil {
		return Update{}, err
	}

	name, err := requireString(hw, FieldName)
	if err != nil {
		return Update{}, err
	}
	code, err := requireString(hw, FieldStatus)
	if err != nil {
		return Update{}, err
	}

	status := Status(code)
	if !status.Known() {
		return Update{}, newValidationError(KindUnknownStatus, "unexpected homework status: %q", code)
	}

	return Update{
		Homework: hw,
		Message:  Message(name, status),
	}, nil
}

// Message renders the notification text for a known status.
func Message(name string, status Status) string {
	return fmt.Sprintf("Changed review status for \"%s\". %s", name, status.Verdict())
}

func asHomework(item any) (Homework, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return nil, newValidationError(KindWrongType, "homework is a %s, expected a mapping", jsonKind(item))
	}
	return Homework(m), nil
}

func requireString(hw Homework, field string) (string, error) {
	v, ok := hw[field]
	if !ok {
		return "", newValidationError(KindMissingField, "homework has no %q field", field)
	}
	s, ok := v.(string)
	if !ok {
		return "", newValidationError(KindWrongType, "%q is a %s, expected a string", field, jsonKind(v))
	}
	return s, nil
}
