// Package practicum provides a client for the Practicum homework statuses API.
//
// The API exposes a single endpoint returning the homeworks whose review status
// changed since a given Unix timestamp, together with the server's current time.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := practicum.NewClient(
//		"https://practicum.yandex.ru/api/user_api/homework_statuses/",
//		"oauth-token",
//		logger,
//		practicum.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	payload, err := client.FetchStatus(ctx, time.Now().Add(-24*time.Hour))
//
// FetchStatus returns the decoded body without inspecting its shape. Structural checks
// live in the homework package.
//
// # Error Handling
//
//   - RequestError: no response was obtained (timeout, DNS, refused connection)
//   - UnexpectedStatusError: a response arrived with a code other than 200
//   - DecodeError: the 200 body was not JSON
//
// Error strings are stable for the same failure so callers can deduplicate on them:
//
//	var statusErr *practicum.UnexpectedStatusError
//	if errors.As(err, &statusErr) && statusErr.IsUnauthorized() {
//		// token revoked
//	}
//
// The client never retries; the polling loop decides when to try again.
package practicum
