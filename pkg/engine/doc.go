// Package engine provides a client for the game server Engine REST API.
//
// A Client carries the settings shared by every call (base URL, application
// name, server id, locale, timeout) and an optional authorization provider.
// Typed resource APIs (characters, inventory, ledger, blueprints, ...) sit on
// top of the five verb methods Get, Post, Put, Patch and Delete.
//
// # Headers
//
// Every request carries:
//   - Accept-Language: the configured locale, when set
//   - x-agent-name: the application name
//   - x-server-id: the server id
//   - x-correlationid: RequestOptions.CorrelationID or a new UUID
//   - Authorization: from the AuthorizationProvider, when one is set
//   - x-character-id / x-executor-user: when given in RequestOptions
//
// # Basic Usage
//
//	client, err := engine.New(engine.Config{
//	    APIURL:          "https://engine.example.com/api",
//	    ApplicationName: "lobby",
//	    ServerID:        "eu-1",
//	    Locale:          "en-US",
//	}, engine.WithAuthorization(engine.NewAPIKeyAuthorization(keyID, secret)))
//
//	chars, err := client.Characters().List(ctx, &engine.CharacterListParams{
//	    UserID: "user-1",
//	}, nil)
//
//	// Raw calls
//	var out map[string]any
//	err = client.Get(ctx, engine.Request{
//	    URL:   "characters",
//	    Query: engine.Query{"ids": []string{"a", "b"}},
//	}, &out)
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the key, message and
// params from the response body plus the HTTP status:
//
//	_, err := client.Characters().Get(ctx, id, nil)
//	if apiErr, ok := engine.AsAPIError(err); ok {
//	    switch apiErr.Key {
//	    case engine.ErrKeyNotFound:
//	        // ...
//	    }
//	}
//
// Transport failures (connection refused, timeouts) are returned unchanged.
// The client never retries.
package engine
