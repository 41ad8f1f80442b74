// Package notification implements the notification service: an in-memory
// delivery history and a simulated sender. Delivery always succeeds at the
// HTTP level; a failed send is reported as status "failed" in the record,
// never as an HTTP error.
package notification
