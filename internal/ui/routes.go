package ui

import (
	"github.com/five82/parkview/internal/router"
)

// routeDef is one row of the application route table.
type routeDef struct {
	Path  string
	Name  string
	Title string
	Admin bool

	// Endpoint is the backend GET route behind a data view; empty for the
	// home and form views.
	Endpoint   string
	QueryParam string
}

// routeDefs is the static route table. Only "/" is built at startup.
var routeDefs = []routeDef{
	{Path: "/", Name: "home", Title: "Home"},
	{Path: "/login", Name: "login", Title: "Sign in"},
	{Path: "/register", Name: "register", Title: "Register"},
	{Path: "/user_dashboard", Name: "user_dashboard", Title: "Dashboard", Endpoint: "/user_dashboard"},
	{Path: "/user_search", Name: "user_search", Title: "Find parking", Endpoint: "/user_search", QueryParam: "query"},
	{Path: "/book_parking", Name: "book_parking", Title: "Book parking", Endpoint: "/get_locations"},
	{Path: "/user_summary", Name: "user_summary", Title: "My summary", Endpoint: "/user_summary"},
	{Path: "/user_profile", Name: "user_profile", Title: "Profile", Endpoint: "/user_profile"},
	{Path: "/admin_dashboard", Name: "admin_dashboard", Title: "Admin dashboard", Admin: true, Endpoint: "/admin_dashboard"},
	{Path: "/user_management", Name: "user_management", Title: "Users", Admin: true, Endpoint: "/get_users"},
	{Path: "/search", Name: "search", Title: "Admin search", Admin: true, Endpoint: "/search", QueryParam: "q"},
	{Path: "/admin_summary", Name: "admin_summary", Title: "Admin summary", Admin: true, Endpoint: "/admin_summary"},
}

// RouteInfo describes a route for listings outside the TUI.
type RouteInfo struct {
	Path     string
	Name     string
	Title    string
	Admin    bool
	Endpoint string
	Eager    bool
}

// RouteTable lists the routes in declaration order.
func RouteTable() []RouteInfo {
	out := make([]RouteInfo, 0, len(routeDefs))
	for _, d := range routeDefs {
		out = append(out, RouteInfo{
			Path:     d.Path,
			Name:     d.Name,
			Title:    d.Title,
			Admin:    d.Admin,
			Endpoint: d.Endpoint,
			Eager:    d.Path == "/",
		})
	}
	return out
}

func buildRoutes(e *env) []router.Route[View] {
	routes := make([]router.Route[View], 0, len(routeDefs))
	for _, d := range routeDefs {
		r := router.Route[View]{Path: d.Path, Name: d.Name, Eager: d.Path == "/"}
		switch {
		case d.Name == "home":
			r.Load = func() View { return newHomeView(e, homeLinks()) }
		case d.Name == "login":
			r.Load = func() View { return newLoginView(e) }
		case d.Name == "register":
			r.Load = func() View { return newRegisterView(e) }
		default:
			r.Load = func() View { return newEndpointView(e, d.Name, d.Title, d.Endpoint, d.QueryParam) }
		}
		routes = append(routes, r)
	}
	return routes
}

func homeLinks() []routeLink {
	links := make([]routeLink, 0, len(routeDefs)-1)
	for _, d := range routeDefs {
		if d.Path == "/" {
			continue
		}
		links = append(links, routeLink{Path: d.Path, Title: d.Title, Admin: d.Admin})
	}
	return links
}

func newRouter(e *env) (*router.Router[View], error) {
	return router.New(buildRoutes(e))
}
