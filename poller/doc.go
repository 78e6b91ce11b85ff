// Package poller runs the homework status polling loop.
//
// # Cycle
//
// Each cycle is strictly sequential:
//
//  1. Fetch statuses with from_date = start time - lookback
//  2. Validate the response shape (homework.ParseReport)
//  3. Render the newest homework (homework.Format)
//  4. Optionally gate the change through a Matcher
//  5. Relay the message if it differs from the last one relayed
//  6. Sleep the fixed interval, then repeat
//
// # Query Window
//
// The window start is computed once, when the Poller is created, and never moves.
// Every cycle re-reads the same look-back window instead of advancing to the
// server's current_date. Deduplication by message text keeps this from producing
// repeated notifications.
//
// # Error Handling
//
// The Poller is the only recovery boundary. Any failure from fetching, validation or
// formatting becomes a "Program failure: <error>" message which is logged every time
// and relayed only when it differs from the previous failure message. Status and
// failure messages are deduplicated independently, so a recovered API does not reset
// the error memory and vice versa.
//
// Notifications are best-effort: the Notifier swallows delivery errors and the loop
// never stops because a message was not delivered.
//
// # Testing
//
// WithSleep and WithClock replace the real timer and clock; RunCycle drives one
// cycle without the loop.
package poller
