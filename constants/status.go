package constants

// VerificationStatus is the canonical status for a verified certificate document.
type VerificationStatus string

// Stable values (these exact strings appear in exports and API responses).
const (
	StatusUnprocessed   VerificationStatus = "unprocessed"    // initial, never returned
	StatusValid         VerificationStatus = "valid"          // extraction ok, not expired
	StatusExpired       VerificationStatus = "expired"        // extraction ok, expiry date in the past
	StatusMismatch      VerificationStatus = "mismatch"       // extraction ok, holder disagrees with filename
	StatusUnreadable    VerificationStatus = "unreadable"     // no usable text or no recognizable fields
	StatusError         VerificationStatus = "error"          // unexpected extraction failure
	StatusNotDownloaded VerificationStatus = "not_downloaded" // zero-byte placeholder file
	StatusTooLarge      VerificationStatus = "too_large"      // exceeds configured max size, OCR skipped
)

// AllStatuses lists every status a returned result can carry.
var AllStatuses = []VerificationStatus{
	StatusValid,
	StatusExpired,
	StatusMismatch,
	StatusUnreadable,
	StatusError,
	StatusNotDownloaded,
	StatusTooLarge,
}

// IsTerminal reports whether no further extraction is attempted once the
// status is set.
func (s VerificationStatus) IsTerminal() bool {
	switch s {
	case StatusError, StatusNotDownloaded, StatusTooLarge:
		return true
	}
	return false
}

// IsFinding reports whether the status describes the document rather than a
// failure of the extraction process itself.
func (s VerificationStatus) IsFinding() bool {
	switch s {
	case StatusValid, StatusExpired, StatusMismatch, StatusUnreadable:
		return true
	}
	return false
}
