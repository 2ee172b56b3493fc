// Package webhook authenticates inbound HumanRail event notifications.
//
// Events are signed with a timestamped HMAC-SHA256 scheme. The signature
// header has the format:
//
//	t=<unix-seconds>,v1=<hex-hmac>
//
// where the HMAC is computed over "<t>.<raw body>" with the organization's
// signing secret. Verification fails closed: malformed headers, stale
// timestamps and digest mismatches all yield false, never an error, so a
// caller probing the endpoint cannot distinguish parse failures from
// invalid signatures.
//
// Verify must be given the request body exactly as received on the wire.
// Re-serializing a decoded payload is not guaranteed to reproduce the
// original bytes and will break verification.
//
// Typical handler:
//
//	handler := webhook.NewHandler(secret, 5*time.Minute,
//		func(ctx context.Context, event *types.WebhookEvent) error {
//			log.Printf("task %s is now %s", event.Data.ID, event.Data.Status)
//			return nil
//		})
//	http.Handle("/webhooks/humanrail", handler)
//
// Construct builds valid signatures for test fixtures. Production signing
// is done by the HumanRail service; clients never sign.
package webhook
