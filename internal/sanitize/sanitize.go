// Package sanitize strips markup and script-injection vectors from
// untrusted form text. The server pass is authoritative; the client
// submitter runs the identical transformation for defense in depth.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/model"
)

// MaxFieldLen caps every sanitized field.
const MaxFieldLen = 1000

var (
	tagRe     = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)
	angleRe   = regexp.MustCompile(`[<>]`)
	jsProtoRe = regexp.MustCompile(`(?i)javascript:`)
	handlerRe = regexp.MustCompile(`(?i)on\w+=`)
)

// Input returns s with HTML tags removed, any residual angle brackets
// stripped, javascript: protocols and on<word>= handler patterns deleted,
// surrounding whitespace trimmed, and length capped at MaxFieldLen.
// Tag removal iterates until stable so nested fragments such as
// "<scr<script>ipt>" cannot reassemble into a tag.
func Input(s string) string {
	for {
		next := tagRe.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	s = angleRe.ReplaceAllString(s, "")
	s = replaceAllStable(jsProtoRe, s)
	s = replaceAllStable(handlerRe, s)
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > MaxFieldLen {
		s = string(r[:MaxFieldLen])
	}
	return s
}

// replaceAllStable strips re until no match remains, so deleting one
// occurrence cannot splice a new one together ("jajavascript:vascript:").
func replaceAllStable(re *regexp.Regexp, s string) string {
	for re.MatchString(s) {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// Request applies Input to every text field of a booking submission.
func Request(req model.AppointmentRequest) model.AppointmentRequest {
	return model.AppointmentRequest{
		Name:          Input(req.Name),
		Phone:         Input(req.Phone),
		Email:         Input(req.Email),
		Address:       Input(req.Address),
		PestType:      Input(req.PestType),
		PreferredDate: Input(req.PreferredDate),
		PreferredTime: Input(req.PreferredTime),
	}
}
