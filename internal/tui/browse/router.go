package browse

import (
	"strings"

	"github.com/gosimple/slug"
)

// Page titles as shown in the navigation bar.
const (
	TitleHome     = "Home"
	TitleQuiz     = "Style Quiz"
	TitleAnalysis = "Image Analysis"
	TitleOutfits  = "Outfits"
	TitleTrends   = "Trends"
)

// PathHome is the index route.
const PathHome = "/"

// Routed paths, derived from the page titles.
var (
	PathQuiz     = PathFor(TitleQuiz)
	PathAnalysis = PathFor(TitleAnalysis)
	PathOutfits  = PathFor(TitleOutfits)
	PathTrends   = PathFor(TitleTrends)
)

// PathFor turns a page title into its route path.
func PathFor(title string) string {
	return "/" + slug.Make(title)
}

// Route is one page reachable from the navigation bar.
type Route struct {
	Title string
	Path  string
}

// Routes lists the pages in navigation order.
func Routes() []Route {
	return []Route{
		{Title: TitleHome, Path: PathHome},
		{Title: TitleQuiz, Path: PathQuiz},
		{Title: TitleAnalysis, Path: PathAnalysis},
		{Title: TitleOutfits, Path: PathOutfits},
		{Title: TitleTrends, Path: PathTrends},
	}
}

// Location is where the router points, together with the payload handed
// over by the page that navigated there.
type Location struct {
	Path  string
	State any
}

// Router resolves paths to routes and keeps a back stack.
type Router struct {
	routes  []Route
	current Location
	history []Location
}

// NewRouter creates a router that has not navigated anywhere yet.
func NewRouter(routes []Route) *Router {
	return &Router{routes: routes}
}

// Routes returns the known routes.
func (r *Router) Routes() []Route {
	return r.routes
}

// Current returns the current location.
func (r *Router) Current() Location {
	return r.current
}

// Normalize cleans a user-supplied path: leading slash, no trailing slash,
// lower case.
func Normalize(path string) string {
	path = strings.ToLower(strings.TrimSpace(path))
	path = strings.TrimRight(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Match looks up the route for path. Unknown paths report false.
func (r *Router) Match(path string) (Route, bool) {
	path = Normalize(path)
	for _, route := range r.routes {
		if route.Path == path {
			return route, true
		}
	}
	return Route{}, false
}

// Navigate moves to path with an optional state payload and reports
// whether the path is a known route. Unknown paths are still navigated to
// so the caller can show the not-found page.
func (r *Router) Navigate(path string, state any) (Location, bool) {
	loc := Location{Path: Normalize(path), State: state}
	if r.current.Path != "" && r.current.Path != loc.Path {
		r.history = append(r.history, r.current)
	}
	r.current = loc
	_, ok := r.Match(loc.Path)
	return loc, ok
}

// Back returns to the previous location. It reports false when there is
// no history.
func (r *Router) Back() (Location, bool) {
	if len(r.history) == 0 {
		return r.current, false
	}
	r.current = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	return r.current, true
}

// CanGoBack reports whether Back would move.
func (r *Router) CanGoBack() bool {
	return len(r.history) > 0
}
