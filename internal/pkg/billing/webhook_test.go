package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	v := NewWebhookVerifier("secret-token")

	assert.True(t, v.VerifySignature("secret-token"))
	assert.True(t, v.VerifySignature("  secret-token  "))
	assert.False(t, v.VerifySignature("wrong-token"))
	assert.False(t, v.VerifySignature(""))
}

func TestVerifyHMACSignature(t *testing.T) {
	v := NewWebhookVerifier("secret-token")
	payload := []byte(`{"id":"inv-1","status":"PAID"}`)

	mac := hmac.New(sha256.New, []byte("secret-token"))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, v.VerifyHMACSignature(payload, signature))
	assert.False(t, v.VerifyHMACSignature(payload, "deadbeef"))
	assert.False(t, v.VerifyHMACSignature([]byte("tampered"), signature))
}
