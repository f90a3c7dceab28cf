package web

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"
	"yatube/auth"
	"yatube/cache"
	"yatube/config"
	"yatube/feed"
	"yatube/models"
	"yatube/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Site holds everything the HTML handlers need. Nothing in here is global,
// tests build their own Site around an in-memory database.
type Site struct {
	DB           *gorm.DB
	Feed         *feed.Assembler
	Cache        *cache.PageCache
	Storage      storage.StorageAPI
	Templates    *template.Template
	IndexTTL     time.Duration
	ImageMaxSize uint
	MinFreeSpace uint64 // bytes
}

func NewSite(db *gorm.DB, pageCache *cache.PageCache, media storage.StorageAPI, templates *template.Template) *Site {
	return &Site{
		DB:           db,
		Feed:         feed.New(db, config.PAGE_SIZE),
		Cache:        pageCache,
		Storage:      media,
		Templates:    templates,
		IndexTTL:     time.Duration(config.INDEX_CACHE_SECONDS) * time.Second,
		ImageMaxSize: uint(config.IMAGE_MAX_SIZE),
		MinFreeSpace: uint64(config.MEDIA_MIN_FREE_MB) * 1024 * 1024,
	}
}

// NewRouter creates the gin engine with the given middleware (sessions at
// the very least) applied to every route
func NewRouter(site *Site, middleware ...gin.HandlerFunc) *gin.Engine {
	registerValidators()
	router := gin.New()
	_ = router.SetTrustedProxies([]string{})
	router.Use(gin.Logger(), gin.CustomRecovery(site.recovery))
	router.Use(middleware...)
	site.RegisterRoutes(router)
	return router
}

func (s *Site) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(s.Templates)
	// Custom Auth Router
	authRouter := &auth.Router{Base: router, DB: s.DB}

	// Feeds
	router.GET("/", s.Index)
	router.GET("/group/:slug/", s.GroupPosts)
	authRouter.GET("/follow/", s.FollowIndex)
	router.GET("/:username/", s.Profile)
	// Posts
	authRouter.Any("/new", s.NewPost)
	router.GET("/:username/:post_id/", s.PostView)
	authRouter.Any("/:username/:post_id/edit/", s.PostEdit)
	authRouter.POST("/:username/:post_id/delete/", s.PostDelete)
	authRouter.Any("/:username/:post_id/comment", s.AddComment)
	// Following
	authRouter.GET("/:username/follow/", s.ProfileFollow)
	authRouter.GET("/:username/unfollow/", s.ProfileUnfollow)
	// Accounts
	router.GET("/auth/login/", s.Login)
	router.POST("/auth/login/", s.Login)
	router.GET("/auth/signup/", s.Signup)
	router.POST("/auth/signup/", s.Signup)
	router.GET("/auth/logout/", s.Logout)
	// Admin
	authRouter.POST("/group/create", s.GroupCreate, models.PermissionGroups)
	authRouter.POST("/admin/cache/clear", s.CacheClear, models.PermissionAdmin)
	// Misc
	router.GET("/about/author/", s.static("about_author.tmpl", "About the author"))
	router.GET("/about/tech/", s.static("about_tech.tmpl", "Technologies"))
	router.GET("/media/*filepath", s.Media)
	router.NoRoute(s.NotFound)
}

func (s *Site) render(c *gin.Context, status int, name string, data gin.H) {
	data["viewer"] = auth.CurrentUser(c, s.DB)
	data["path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}

func (s *Site) static(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, name, gin.H{"title": title})
	}
}

func (s *Site) NotFound(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	s.render(c, http.StatusNotFound, "404.tmpl", gin.H{"title": "Not found"})
}

func (s *Site) serverError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	if wantsJSON(c) {
		c.JSON(http.StatusInternalServerError, ServerErrorResponse)
		return
	}
	// No viewer lookup here, the database may be what failed
	c.HTML(http.StatusInternalServerError, "500.tmpl", gin.H{"title": "Server error"})
}

func (s *Site) recovery(c *gin.Context, recovered any) {
	s.serverError(c, errors.New("panic: "+stringify(recovered)))
	c.Abort()
}

// handleError maps domain errors onto responses
func (s *Site) handleError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) {
		s.NotFound(c)
		return
	}
	s.serverError(c, err)
}

func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json"
}

func postURL(username string, postID uint64) string {
	return "/" + username + "/" + strconv.FormatUint(postID, 10) + "/"
}

func profileURL(username string) string {
	return "/" + username + "/"
}

// postIDParam returns 0 for anything that is not a valid ID
func postIDParam(c *gin.Context) uint64 {
	id, _ := strconv.ParseUint(c.Param("post_id"), 10, 64)
	return id
}

func stringify(v any) string {
	switch t := v.(type) {
	case error:
		return t.Error()
	case string:
		return t
	}
	return "unknown"
}
