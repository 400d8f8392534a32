package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MarkerQueued is set on a lead at enrollment, before any email has
// gone out. SentCount treats it like an empty marker.
const MarkerQueued = "queued"

// FollowUpInterval is the fixed cadence between periodic emails once a
// lead is past enrollment. It intentionally ignores the per-step
// offsets declared in the catalog; those only govern the initial
// enrollment scheduling.
const FollowUpInterval = 3 * 24 * time.Hour

const markerPrefix = "email:"

// SentCount parses the number of email steps already completed from a
// lead's progress marker ("email:<N>"). Empty, "queued", malformed and
// negative markers all count as zero.
func SentCount(lastStep string) int {
	rest, ok := strings.CutPrefix(lastStep, markerPrefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ProgressMarker encodes a completed-email count back into the stored
// marker format.
func ProgressMarker(sentCount int) string {
	return fmt.Sprintf("%s%d", markerPrefix, sentCount)
}

// NextEmailStep picks the step at position sentCount within the given
// email steps. Out-of-range counts fall back to the first email step:
// a lead that has exhausted its sequence resends step one rather than
// failing. ok is false only when the slice is empty.
func NextEmailStep(emailSteps []Step, sentCount int) (Step, bool) {
	if len(emailSteps) == 0 {
		return Step{}, false
	}
	if sentCount < 0 || sentCount >= len(emailSteps) {
		return emailSteps[0], true
	}
	return emailSteps[sentCount], true
}
