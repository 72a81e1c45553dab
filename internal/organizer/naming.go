package organizer

import (
	"strings"
	"time"

	"casevault/internal/model"
)

// Prefix returns the upper-cased category label with whitespace runs
// replaced by underscores, e.g. "RECEIPTS_&_EXPENSES".
func Prefix(c model.DocumentCategory) string {
	return strings.ToUpper(strings.Join(strings.Fields(c.Label()), "_"))
}

// GenerateName builds PREFIX_YYYY-MM-DD[_custom].
//
// The calendar date is read in date's own location; it is never converted
// to UTC. Callers pass the capture time already in the user's zone.
func GenerateName(c model.DocumentCategory, date time.Time, customName string) string {
	name := Prefix(c) + "_" + date.Format(time.DateOnly)
	if custom := strings.TrimSpace(customName); custom != "" {
		name += "_" + custom
	}
	return name
}
