package middleware

import (
	"net/http"
	"strings"
)

// TrimTrailingSlash strips trailing slashes before the router sees the path,
// so /posts/ and /posts/1/ are served like /posts and /posts/1.
func TrimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			req.URL.Path = trimSlashes(p)
			if req.URL.RawPath != "" {
				req.URL.RawPath = trimSlashes(req.URL.RawPath)
			}
		}
		next.ServeHTTP(w, req)
	})
}

func trimSlashes(p string) string {
	if t := strings.TrimRight(p, "/"); t != "" {
		return t
	}
	return "/"
}
