// Package apivideo provides resource clients for the api.video REST API.
//
// Each resource (live streams, players) is exposed as a client with Get,
// Create, Update, Delete and Search, plus the uploads the resource supports.
// All clients share one generic implementation and one injected Browser,
// which performs the HTTP calls.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := apivideo.NewClient(apiKey, logger, browser.WithSandbox())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	live, err := client.Lives.Create(ctx, "launch event", apivideo.LiveProperties{
//		Record: apivideo.Bool(true),
//	})
//
//	// Every page, 100 items at a time
//	lives, err := client.Lives.Search(ctx, apivideo.LiveSearchParams{})
//
//	// Only the second page of 25
//	page, err := client.Players.Search(ctx, apivideo.PlayerSearchParams{
//		PageParams: apivideo.PageParams{CurrentPage: 2, PageSize: 25},
//	})
//
// # Casting
//
// Responses are decoded into fixed structs (Live, Player); fields the struct
// does not declare are dropped, and empty or null bodies cast to nil.
// CastLive and CastPlayer expose the same conversion for raw JSON.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which keeps the raw response:
//
//	var apiErr *apivideo.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// Handle missing resource
//	}
//
// Uploads check the source file before any request and fail with
// ErrSourceNotReadable or ErrSourceEmpty.
package apivideo
