// Package session owns the logged-in state shared by every view.
//
// # Overview
//
// A single Manager is created at bootstrap and handed to views as a
// Provider. Views never keep their own copy of user/loggedIn/admin; they
// call Status when they are instantiated and render Snapshot.
//
//	Status(ctx)
//	  ├─ no stored token  → {User: nil, LoggedIn: false, Admin: false}, no request
//	  └─ token            → GET /get_user_info
//	        ├─ 2xx + user → {User, LoggedIn: true, Admin: user.Admin}
//	        └─ otherwise  → logged out, warning logged, LastError set
//
// # Logout
//
// Logout only revokes the token on the server and returns the message to
// show. The caller clears local state with Clear after the user dismisses
// the notification, so the token survives a failed logout.
//
// # Concurrency
//
// State is guarded by a sync.RWMutex and Snapshot returns a copy. Clear
// bumps an epoch; a Status call that started before Clear does not write its
// result, so a slow /get_user_info cannot log a user back in.
package session
