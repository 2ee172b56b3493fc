package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prime001/humanrail-sdk/pkg/types"
)

// SignatureHeader is the HTTP header carrying the event signature.
const SignatureHeader = "X-Humanrail-Signature"

// Verifier checks event signatures for one signing secret.
// It is stateless and safe for concurrent use.
type Verifier struct {
	secret    string
	tolerance time.Duration
	clock     types.Clock
}

// NewVerifier creates a verifier for the given signing secret.
//
// tolerance is the maximum accepted age of a signature, guarding against
// replayed deliveries. Zero disables the freshness check, which is not
// recommended outside of tests.
func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{
		secret:    secret,
		tolerance: tolerance,
		clock:     types.NewRealClock(),
	}
}

// WithClock returns a copy of the verifier using the given clock.
func (v *Verifier) WithClock(clock types.Clock) *Verifier {
	copied := *v
	copied.clock = clock
	return &copied
}

// Verify reports whether header is a valid, fresh signature over payload.
// payload must be the raw request body exactly as received. Any malformed
// input yields false; Verify never panics or returns an error.
func (v *Verifier) Verify(payload []byte, header string) bool {
	if len(payload) == 0 || header == "" || v.secret == "" {
		return false
	}

	timestamp, digest, ok := parseHeader(header)
	if !ok {
		return false
	}

	if v.tolerance > 0 {
		age := v.clock.Now().Unix() - timestamp
		if age < 0 {
			age = -age
		}
		if time.Duration(age)*time.Second > v.tolerance {
			return false
		}
	}

	provided, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}

	expected := computeDigest(payload, v.secret, timestamp)
	if len(provided) != len(expected) {
		return false
	}
	return hmac.Equal(provided, expected)
}

// Verify is a convenience wrapper over a one-off Verifier.
func Verify(payload []byte, header, secret string, tolerance time.Duration) bool {
	return NewVerifier(secret, tolerance).Verify(payload, header)
}

// Construct builds a signature header for the given payload and secret.
// A zero timestamp defaults to the current time.
//
// Construct exists for test fixtures only; production events are signed
// by the HumanRail service.
func Construct(payload []byte, secret string, timestamp int64) string {
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}
	digest := computeDigest(payload, secret, timestamp)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(digest))
}

// parseHeader extracts the t and v1 values from a comma-separated header
// of key=value pairs. Both keys are mandatory, order is irrelevant and
// unknown keys are ignored.
func parseHeader(header string) (timestamp int64, digest string, ok bool) {
	var timestampStr string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestampStr = value
		case "v1":
			digest = value
		}
	}

	if timestampStr == "" || digest == "" {
		return 0, "", false
	}

	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return timestamp, digest, true
}

// computeDigest returns HMAC-SHA256(secret, "<timestamp>.<payload>").
func computeDigest(payload []byte, secret string, timestamp int64) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}
