package web

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// safeNext only allows local redirects
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (s *Site) Login(c *gin.Context) {
	form := LoginForm{Next: c.Query("next")}
	if c.Request.Method != http.MethodPost {
		s.render(c, http.StatusOK, "login.tmpl", gin.H{"title": "Log in", "form": form, "next": form.Next, "errors": noErrors()})
		return
	}
	if verr := bindForm(c, &form); verr != nil {
		s.render(c, http.StatusOK, "login.tmpl", gin.H{"title": "Log in", "form": form, "next": form.Next, "errors": verr.Fields})
		return
	}
	user, ok := models.UserLogin(s.DB.WithContext(c.Request.Context()), form.Username, form.Password)
	if !ok {
		fieldErrors := map[string]string{"form": "Please enter a correct username and password."}
		s.render(c, http.StatusOK, "login.tmpl", gin.H{"title": "Log in", "form": form, "next": form.Next, "errors": fieldErrors})
		return
	}
	if err := auth.LoadSession(c).LoginUser(&user); err != nil {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

func (s *Site) Signup(c *gin.Context) {
	form := SignupForm{}
	if c.Request.Method != http.MethodPost {
		s.render(c, http.StatusOK, "signup.tmpl", gin.H{"title": "Sign up", "form": form, "errors": noErrors()})
		return
	}
	if verr := bindForm(c, &form); verr != nil {
		s.render(c, http.StatusOK, "signup.tmpl", gin.H{"title": "Sign up", "form": form, "errors": verr.Fields})
		return
	}
	user, err := models.UserCreate(s.DB.WithContext(c.Request.Context()), form.Username, form.FirstName, form.LastName, form.Password1)
	if errors.Is(err, models.ErrUsernameTaken) {
		fieldErrors := map[string]string{"username": "A user with that username already exists."}
		s.render(c, http.StatusOK, "signup.tmpl", gin.H{"title": "Sign up", "form": form, "errors": fieldErrors})
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	log.Printf("New user: %s (%d)", user.Username, user.ID)
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (s *Site) Logout(c *gin.Context) {
	if err := auth.LoadSession(c).LogoutUser(); err != nil {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
