// Package session gives every browser its own searcher.
//
// Sessions are kept in memory by scs; the only value stored is the searcher
// ID under which the search registry keeps that browser's controller.
// Nothing survives a restart, and there are no accounts.
//
// # Configuration
//
//	SESSION_LIFETIME=24h            # Cookie and store lifetime
//	SESSION_COOKIE_NAME=bookclub_session
//	SESSION_SECURE_COOKIES=true     # HTTPS-only cookies
//	CSRF_SECRET=<hex-32-bytes>      # Generated at startup if empty
//
// # Usage
//
//	sm := session.NewManager(cfg.Sessions)
//	router.Use(sm.LoadSave())
//	id := sm.SearcherID(c.Request.Context())
package session
