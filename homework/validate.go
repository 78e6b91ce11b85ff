package homework

// Validate checks the shape of a decoded API response. Checks run in a fixed order
// and the first failure is returned. An empty homework list is valid.
func Validate(payload any) error {
	_, err := ParseReport(payload)
	return err
}

// ParseReport validates payload and returns the typed report.
func ParseReport(payload any) (StatusReport, error) {
	report, ok := payload.(map[string]any)
	if !ok {
		return StatusReport{}, newValidationError(KindNotMapping,
			"response is a %s, expected a mapping", jsonKind(payload))
	}

	items, ok := report[KeyHomeworks]
	if !ok {
		return StatusReport{}, newValidationError(KindMissingKey, "response has no %q key", KeyHomeworks)
	}

	currentDate, ok := report[KeyCurrentDate]
	if !ok {
		return StatusReport{}, newValidationError(KindMissingKey, "response has no %q key", KeyCurrentDate)
	}

	list, ok := items.([]any)
	if !ok {
		return StatusReport{}, newValidationError(KindWrongType,
			"%q is a %s, expected a list", KeyHomeworks, jsonKind(items))
	}

	return StatusReport{
		Homeworks:   list,
		CurrentDate: toInt64(currentDate),
	}, nil
}
