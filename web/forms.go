package web

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type PostForm struct {
	Title string `form:"title" binding:"max=200"`
	Text  string `form:"text" binding:"required"`
	Group uint64 `form:"group"` // 0 means no group
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type SignupForm struct {
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Username  string `form:"username" binding:"required,max=150,username"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}

type GroupForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	Slug        string `form:"slug" binding:"required,max=20,slug"`
	Description string `form:"description"`
}

var (
	slugRegexp     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)
	// First path segments taken by the router, profiles live at /<username>/
	reservedUsernames = map[string]bool{
		"about": true, "admin": true, "auth": true, "follow": true,
		"group": true, "media": true, "new": true,
	}
	validatorsOnce sync.Once
)

func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// Report errors under the form field names
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRegexp.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return usernameRegexp.MatchString(name) && !reservedUsernames[strings.ToLower(name)]
		})
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "username":
		return "Enter a valid username. Letters, digits and @/./+/-/_ only, site section names are reserved."
	}
	return "Enter a valid value."
}

// bindForm fills obj from the request, returning field errors suitable for
// re-rendering the form
func bindForm(c *gin.Context, obj any) *models.ValidationError {
	err := c.ShouldBind(obj)
	if err == nil {
		return nil
	}
	return toValidationError(err)
}

func toValidationError(err error) *models.ValidationError {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		result := &models.ValidationError{Fields: map[string]string{}}
		for _, fe := range fieldErrors {
			if _, exists := result.Fields[fe.Field()]; !exists {
				result.Fields[fe.Field()] = fieldMessage(fe)
			}
		}
		return result
	}
	// e.g. a non-numeric group ID
	return models.NewValidationError("form", "Please correct the errors below.")
}

func noErrors() map[string]string {
	return map[string]string{}
}
