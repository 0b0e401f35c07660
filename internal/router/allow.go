package router

import (
	"net/http"
	"sort"
	"strings"

	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// matchPattern reports whether a request path matches a gin route pattern.
func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	rs := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range ps {
		if strings.HasPrefix(seg, "*") {
			return true
		}
		if i >= len(rs) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if rs[i] == "" {
				return false
			}
			continue
		}
		if seg != rs[i] {
			return false
		}
	}
	return len(ps) == len(rs)
}

// allowedMethods lists the methods registered for path, sorted.
func allowedMethods(routes gin.RoutesInfo, path string) []string {
	seen := map[string]bool{}
	for _, r := range routes {
		if matchPattern(r.Path, path) {
			seen[r.Method] = true
		}
	}
	methods := make([]string, 0, len(seen)+1)
	for m := range seen {
		methods = append(methods, m)
	}
	if len(methods) > 0 && !seen[http.MethodOptions] {
		methods = append(methods, http.MethodOptions)
	}
	sort.Strings(methods)
	return methods
}

func methodNotAllowedHandler(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		methods := allowedMethods(engine.Routes(), c.Request.URL.Path)
		if len(methods) > 0 {
			c.Header("Allow", strings.Join(methods, ", "))
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusMethodNotAllowed, utils.ErrCodeMethodNotAllowed,
			"Method "+c.Request.Method+" not allowed", ""))
	}
}

func notFoundHandler(c *gin.Context) {
	utils.RespondNotFound(c, "Route not found", c.Request.Method+" "+c.Request.URL.Path)
}
