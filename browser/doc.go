// Package browser is the HTTP transport used by the apivideo resource clients.
//
// A Browser exchanges the account API key for a short-lived bearer token
// (POST /auth/api-key), renews it through /auth/refresh when it expires, and
// sends JSON or multipart requests to the configured endpoint. Responses are
// returned as raw *Response values; deciding what a status code means is left
// to the caller, with IsSuccessful as the shared 2xx predicate.
//
// # Usage
//
//	b, err := browser.New(apiKey, logger,
//		browser.WithSandbox(),
//		browser.WithMaxRetries(2),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := b.Get(ctx, "/live-streams?currentPage=1&pageSize=25")
//
// # Retries
//
// Retries are off by default. With WithMaxRetries, transport errors and
// 429/5xx responses are retried with exponential backoff starting at
// WithRetryDelay; the last response is returned unchanged when retries run
// out.
package browser
