// Package tuentisdk is the Go client for the tuenti HTTP API.
//
// A Client covers the anonymous endpoints: health, invitation validation,
// registration, sign in and password reset. Signing in or registering yields
// a Session, which carries the bearer token, refreshes it before it expires
// and persists every rotation through a TokenStore.
//
//	c := tuentisdk.NewClient("http://localhost:8080")
//	c.Tokens = &tuentisdk.FileTokenStore{Path: "tokens.json"}
//
//	s, err := c.SignIn(ctx, "ana@example.com", "correct horse")
//	if err != nil {
//		return err
//	}
//	feed, err := s.Feed(ctx, tuentisdk.FeedOptions{Filter: "friends"})
//
// The signup flow is driven by a Wizard, which validates the invitation
// first and checks the registration form locally before it is sent:
//
//	w := c.NewWizard(code)
//	if err := w.Validate(ctx); err != nil { ... }
//	_ = w.Next()                 // disclaimer
//	w.AcceptDisclaimer(true)
//	_ = w.Next()                 // register
//	s, err := w.Submit(ctx, form)
//
// Server errors come back as *APIError. Form problems found before any
// request is made come back as *ValidationError.
package tuentisdk
