package webhook

import "crypto/subtle"

// SubscribeMode is the only hub.mode value the platform uses for the handshake.
const SubscribeMode = "subscribe"

// Verify validates a webhook subscription handshake. It is true only when the
// mode is "subscribe" and the presented token matches the configured one.
func Verify(mode, token, configuredToken string) bool {
	if mode != SubscribeMode {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(configuredToken)) == 1
}
