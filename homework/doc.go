// Package homework validates homework status responses and renders notification text.
//
// Validation is strict about shape and lenient about content: the response must be a
// mapping holding a "homeworks" list and a "current_date" key, but the list may be
// empty. Only the first (newest) homework is ever rendered:
//
//	report, err := homework.ParseReport(payload)
//	if err != nil {
//		return err // *homework.ValidationError
//	}
//	update, err := homework.Format(report.Homeworks)
//	if errors.Is(err, homework.ErrNoUpdate) {
//		// nothing changed in the query window
//	}
//
// Every ValidationError matches exactly one sentinel (ErrNotMapping, ErrMissingKey,
// ErrWrongType, ErrMissingField, ErrUnknownStatus) and renders a stable message.
package homework
