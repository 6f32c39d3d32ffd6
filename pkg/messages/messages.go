package messages

const (
	BadStatusCodeMsg    = "API returned status code %d for %s"
	EmptyUsernames      = "usernames can't be empty"
	FailedToParseMsg    = "failed to parse API response for %s"
	MissingFieldMsg     = "response for %s is missing the %q field"
	RequestFailedMsg    = "API request failed for %s"
	SkippedAccountMsg   = "skipping account: %v"
	SnapshotNotFoundMsg = "no snapshot found for %s"
)
