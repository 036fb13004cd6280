package web

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"assetboard/internal/auth"
	"assetboard/internal/config"
	"assetboard/internal/models"
	"assetboard/internal/store"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "currentUser"

// Server wraps the web application server
type Server struct {
	cfg      *config.Config
	store    *store.Store
	sessions *auth.Sessions
	router   *gin.Engine
}

// NewServer builds the gin engine, templates, middleware and routes.
func NewServer(cfg *config.Config, st *store.Store, sessions *auth.Sessions) *Server {
	s := &Server{cfg: cfg, store: st, sessions: sessions}

	router := gin.New()

	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s %s \"%s\" %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.ClientIP,
			param.Method,
			param.StatusCode,
			param.Latency,
			param.Path,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(loadTemplates())

	// Identity resolution runs on every route; the auth gate only on the
	// ones that need it.
	router.Use(s.resolveIdentity())

	router.GET("/", s.requireAuth(), s.Index)
	router.GET("/index", s.requireAuth(), s.Index)

	router.GET("/login", s.LoginForm)
	router.POST("/login", s.Login)
	router.GET("/logout", s.Logout)
	router.GET("/register", s.RegisterForm)
	router.POST("/register", s.Register)

	router.GET("/user/:username", s.requireAuth(), s.UserProfile)
	router.GET("/edit_profile", s.requireAuth(), s.EditProfileForm)
	router.POST("/edit_profile", s.requireAuth(), s.EditProfile)

	router.GET("/asset/:asset_name", s.requireAuth(), s.AssetPage)
	router.GET("/create_asset", s.CreateAssetForm)
	router.POST("/create_asset", s.CreateAsset)
	router.GET("/create_asset_update", s.CreateAssetUpdateForm)
	router.POST("/create_asset_update", s.CreateAssetUpdate)

	router.NoRoute(s.notFound)

	s.router = router
	return s
}

// resolveIdentity loads the session user into the request context and stamps
// their last-seen time, at most once per request.
func (s *Server) resolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := s.sessions.CurrentUserID(c); ok {
			user, err := s.store.GetUser(id)
			if err == nil {
				c.Set(ctxUserKey, user)
				if err := s.store.TouchLastSeen(user.ID); err != nil {
					log.Printf("Failed to update last seen for user %d: %v", user.ID, err)
				}
			}
		}
		c.Next()
	}
}

// requireAuth redirects anonymous requests to the login page, carrying the
// originally requested path in the next parameter.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser returns the resolved session user, or nil for anonymous
// requests.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		return v.(*models.User)
	}
	return nil
}

// render executes a page template with the common context attached: the
// current user and any pending flash message.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Flash"]; !ok {
		if msg := popFlash(c); msg != "" {
			data["Flash"] = msg
		}
	}
	data["CurrentUser"] = currentUser(c)
	c.HTML(status, name, data)
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "404.html", gin.H{"Title": "Not Found"})
}

func (s *Server) serverError(c *gin.Context, err error) {
	log.Printf("Request failed: %v", err)
	c.String(http.StatusInternalServerError, "internal server error")
	c.Abort()
}

// GetRouter returns the underlying gin engine
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
