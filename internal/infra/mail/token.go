package mail

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// UnsubscribeToken is the hex HMAC-SHA256 of the raw email address
// under the shared secret. The same computation validates inbound
// unsubscribe requests.
func UnsubscribeToken(secret, email string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(email))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyUnsubscribeToken compares in constant time.
func VerifyUnsubscribeToken(secret, email, token string) bool {
	expected := UnsubscribeToken(secret, email)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
