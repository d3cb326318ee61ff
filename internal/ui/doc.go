// Package ui is the Bubble Tea front end of parkview.
//
// The root Model owns three collaborators:
//
//   - a router.Router[View] holding the route table from routes.go; the home
//     view is built at startup, every other view on first navigation
//   - the session.Provider shared by all views; every navigation asks it for
//     the current status and the header renders the result
//   - a toast.Model stacked over the rendered view for notifications
//
// Views are long-lived pointers cached by the router. They receive key
// messages while they are on screen and their own async results at any time,
// addressed by route name.
//
// Logging out is two-phase: the remote logout runs first and shows a success
// toast; only when that toast closes is the local token cleared and the user
// sent to /login.
package ui
