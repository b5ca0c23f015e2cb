package dodo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dodo signs webhooks with the Standard Webhooks scheme: base64
// HMAC-SHA256 over "<msg id>.<timestamp>.<payload>" using the
// whsec_-prefixed base64 secret, delivered as "v1,<signature>" entries in
// the webhook-signature header.

const signatureVersion = "v1"

// Delivery timestamps older or newer than this are rejected to blunt
// replayed payloads.
const timestampTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("webhook signature mismatch")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside tolerance")
)

func decodeSecret(secret string) ([]byte, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %v", err)
	}
	return key, nil
}

// Sign computes the signature for a payload. Exported so tests can build
// valid deliveries.
func Sign(secret, msgID, timestamp string, payload []byte) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)

	return signatureVersion + "," + base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// VerifySignature checks a webhook delivery against the configured secret.
// The signature header may carry several space-separated signatures (key
// rotation); any matching v1 entry passes.
func VerifySignature(secret, msgID, timestamp, signatureHeader string, payload []byte) error {
	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp: %v", err)
	}
	if delta := time.Since(time.Unix(unix, 0)); delta > timestampTolerance || delta < -timestampTolerance {
		return ErrStaleTimestamp
	}

	expected, err := Sign(secret, msgID, timestamp, payload)
	if err != nil {
		return err
	}
	expectedSig := strings.TrimPrefix(expected, signatureVersion+",")

	for _, candidate := range strings.Fields(signatureHeader) {
		parts := strings.SplitN(candidate, ",", 2)
		if len(parts) != 2 || parts[0] != signatureVersion {
			continue
		}
		if hmac.Equal([]byte(parts[1]), []byte(expectedSig)) {
			return nil
		}
	}

	return ErrInvalidSignature
}
