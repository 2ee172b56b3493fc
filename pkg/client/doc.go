// Package client implements the HTTP client for the HumanRail API.
//
// The client wraps every request in the retry executor from pkg/retry and
// layers the polling waiter from pkg/poll on top for task completion. An
// optional client-side token bucket throttles outbound requests.
//
// Basic usage:
//
//	cfg := client.DefaultConfig()
//	cfg.APIKey = os.Getenv("HUMANRAIL_API_KEY")
//	c := client.New(cfg)
//
//	task, err := c.CreateTask(ctx, types.TaskCreateRequest{
//		IdempotencyKey: client.DeriveIdempotencyKey("order-service", "order-12345", "refund-check"),
//		TaskType:       "refund_eligibility",
//		Payload:        map[string]any{"orderId": "order-12345"},
//		OutputSchema:   map[string]any{"type": "object"},
//		Payout:         types.Payout{Currency: types.PayoutCurrencyUSD, MaxAmount: 0.50},
//	})
//	if err != nil {
//		return err
//	}
//
//	task, err = c.WaitForCompletion(ctx, task.ID, client.WaitOptions{})
package client
