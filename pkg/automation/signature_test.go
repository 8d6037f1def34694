package automation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "callback-secret"
	body := []byte(`{"dispatch_id":"abc","status":"submitted"}`)

	signature := Sign(secret, body)
	assert.True(t, VerifySignature(secret, body, signature))
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	secret := "callback-secret"
	body := []byte(`{"dispatch_id":"abc","status":"submitted"}`)
	signature := Sign(secret, body)

	tampered := []byte(`{"dispatch_id":"abc","status":"approved"}`)
	assert.False(t, VerifySignature(secret, tampered, signature))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"dispatch_id":"abc"}`)
	signature := Sign("secret-a", body)

	assert.False(t, VerifySignature("secret-b", body, signature))
}

func TestVerifySignatureRejectsEmpty(t *testing.T) {
	body := []byte(`{}`)

	assert.False(t, VerifySignature("", body, Sign("", body)))
	assert.False(t, VerifySignature("secret", body, ""))
}
