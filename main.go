package main

import (
	"log"
	"strings"
	"time"
	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/storage"
	"yatube/templates"
	"yatube/utils"
	"yatube/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "sessionid"

func main() {
	database, err := db.Open()
	if err != nil {
		log.Fatalf("Cannot open database: %v", err)
	}
	if err = models.Init(database); err != nil {
		log.Fatalf("Cannot migrate database: %v", err)
	}
	media, err := storage.New()
	if err != nil {
		log.Fatalf("Cannot initialise media storage: %v", err)
	}
	tmpl, err := templates.Load()
	if err != nil {
		log.Fatalf("Cannot parse templates: %v", err)
	}
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware := []gin.HandlerFunc{}
	if config.DEBUG_MODE {
		middleware = append(middleware, utils.ErrorLogMiddleware)
	}
	middleware = append(middleware, cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGINS, ","),
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: config.CORS_ORIGINS != "*",
		MaxAge:           30 * 24 * time.Hour,
	}))
	sessionStore := gormsessions.NewStore(database, true, []byte(config.SESSION_KEY))
	sessionStore.Options(sessions.Options{Path: "/", MaxAge: config.SESSION_MAX_AGE, HttpOnly: true})
	middleware = append(middleware, sessions.Sessions(sessionCookieName, sessionStore))
	if !config.DEBUG_MODE {
		middleware = append(middleware, gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`^/media/`})))
	}
	// No cache by default, media and static pages can be kept by browsers and proxies
	middleware = append(middleware, (&utils.CacheRouter{
		CacheTime:  utils.CacheNoCache,
		Public:     []string{"/media/", "/about/"},
		PublicTime: 7 * 86400,
	}).Handler())

	site := web.NewSite(database, cache.New(), media, tmpl)
	router := web.NewRouter(site, middleware...)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
