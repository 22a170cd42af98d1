package navigation

import (
	urlkit "github.com/goliatone/go-urlkit"
)

// Route names navbar items may point at.
const (
	RouteHome     = "home"
	RouteBlogs    = "blogs"
	RouteBlog     = "blog"
	RouteEvents   = "events"
	RouteEvent    = "event"
	RouteServices = "services"
	RouteService  = "service"
	RouteContact  = "contact"
)

func publicPaths() map[string]string {
	return map[string]string{
		RouteHome:     "/",
		RouteBlogs:    "/blogs",
		RouteBlog:     "/blogs/:slug",
		RouteEvents:   "/events",
		RouteEvent:    "/events/:slug",
		RouteServices: "/services",
		RouteService:  "/services/:slug",
		RouteContact:  "/contact",
	}
}

// DefaultRouteConfig returns the public site routes: English at the root
// and Urdu under /ur.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "public",
				BaseURL: baseURL,
				Paths:   publicPaths(),
				Groups: []urlkit.GroupConfig{
					{
						Name:  "ur",
						Path:  "/ur",
						Paths: publicPaths(),
					},
				},
			},
		},
	}
}

// DefaultLocaleGroups pairs with DefaultRouteConfig.
func DefaultLocaleGroups() map[string]string {
	return map[string]string{"en": "public", "ur": "public.ur"}
}
