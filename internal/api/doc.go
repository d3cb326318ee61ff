// Package api is the HTTP client for the parking-booking backend.
//
// Only the calls the presentation layer needs are typed: user info, login,
// registration and logout. Every other view endpoint is fetched as generic
// JSON with FetchJSON and rendered as key/value lines.
//
// Authenticated calls send "Authorization: Bearer <token>". Non-2xx
// responses come back as *StatusError so callers can branch on the code:
//
//	user, err := client.GetUserInfo(ctx, token)
//	var statusErr *api.StatusError
//	if errors.As(err, &statusErr) && statusErr.Unauthorized() {
//		// token expired or revoked
//	}
//
// Each request carries an X-Request-ID header which is also logged, so a
// failed call can be matched against the server logs.
package api
