package web

import (
	"bytes"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"yatube/models"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errNoSpace = errors.New("not enough free space for media")

func (s *Site) PostView(c *gin.Context) {
	tx := s.DB.WithContext(c.Request.Context())
	post, err := models.PostByAuthor(tx, c.Param("username"), postIDParam(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	comments, err := models.CommentsForPost(tx, post.ID)
	if err != nil {
		s.serverError(c, err)
		return
	}
	postCount, err := models.PostCountByAuthor(tx, post.AuthorID)
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "post.tmpl", gin.H{
		"title":      post.Excerpt(),
		"post":       post,
		"author":     post.Author,
		"post_count": postCount,
		"comments":   comments,
		"form":       CommentForm{},
		"errors":     noErrors(),
	})
}

func (s *Site) NewPost(c *gin.Context, user *models.User) {
	form := PostForm{}
	if c.Request.Method != http.MethodPost {
		s.renderPostForm(c, form, noErrors(), nil)
		return
	}
	tx := s.DB.WithContext(c.Request.Context())
	fields, verr := s.postFields(c, tx, &form)
	if verr != nil {
		s.renderPostForm(c, form, verr.Fields, nil)
		return
	}
	if _, err := models.PostCreate(tx, user.ID, fields); err != nil {
		s.removeImage(fields.Image)
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// PostEdit lets the author change the post. Anybody else is sent back to
// the post page.
func (s *Site) PostEdit(c *gin.Context, user *models.User) {
	tx := s.DB.WithContext(c.Request.Context())
	username := c.Param("username")
	post, err := models.PostByAuthor(tx, username, postIDParam(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, postURL(username, post.ID))
		return
	}
	form := PostForm{Title: post.Title, Text: post.Text}
	if post.GroupID != nil {
		form.Group = *post.GroupID
	}
	if c.Request.Method != http.MethodPost {
		s.renderPostForm(c, form, noErrors(), &post)
		return
	}
	fields, verr := s.postFields(c, tx, &form)
	if verr != nil {
		s.renderPostForm(c, form, verr.Fields, &post)
		return
	}
	_, err = models.PostUpdate(tx, user.ID, post.ID, fields)
	switch {
	case errors.Is(err, models.ErrForbidden):
		s.removeImage(fields.Image)
	case err != nil:
		s.removeImage(fields.Image)
		s.handleError(c, err)
		return
	case fields.Image != "" && post.Image != "":
		// Replaced
		s.removeImage(post.Image)
	}
	c.Redirect(http.StatusFound, postURL(username, post.ID))
}

// PostDelete removes the post and its comments, author only
func (s *Site) PostDelete(c *gin.Context, user *models.User) {
	tx := s.DB.WithContext(c.Request.Context())
	username := c.Param("username")
	post, err := models.PostByAuthor(tx, username, postIDParam(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	post, err = models.PostDelete(tx, user.ID, post.ID)
	if errors.Is(err, models.ErrForbidden) {
		c.Redirect(http.StatusFound, postURL(username, post.ID))
		return
	}
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.removeImage(post.Image)
	c.Redirect(http.StatusFound, profileURL(username))
}

func (s *Site) AddComment(c *gin.Context, user *models.User) {
	tx := s.DB.WithContext(c.Request.Context())
	username := c.Param("username")
	post, err := models.PostByAuthor(tx, username, postIDParam(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	form := CommentForm{}
	if c.Request.Method != http.MethodPost {
		s.render(c, http.StatusOK, "comments.tmpl", gin.H{"form": form, "errors": noErrors()})
		return
	}
	if verr := bindForm(c, &form); verr != nil {
		s.render(c, http.StatusOK, "comments.tmpl", gin.H{"form": form, "errors": verr.Fields})
		return
	}
	if _, err = models.CommentCreate(tx, user.ID, post.ID, form.Text); err != nil {
		s.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(username, post.ID))
}

func (s *Site) renderPostForm(c *gin.Context, form PostForm, fieldErrors map[string]string, post *models.Post) {
	groups, err := models.GroupList(s.DB.WithContext(c.Request.Context()))
	if err != nil {
		s.serverError(c, err)
		return
	}
	data := gin.H{
		"title":   "New post",
		"form":    form,
		"errors":  fieldErrors,
		"groups":  groups,
		"is_edit": post != nil,
	}
	if post != nil {
		data["title"] = "Edit post"
		data["post"] = *post
	}
	s.render(c, http.StatusOK, "new_post.tmpl", data)
}

// postFields validates the submitted form and stores the uploaded image, if any
func (s *Site) postFields(c *gin.Context, tx *gorm.DB, form *PostForm) (fields models.PostFields, verr *models.ValidationError) {
	if verr = bindForm(c, form); verr != nil {
		return
	}
	fields.Title = form.Title
	fields.Text = form.Text
	if form.Group != 0 {
		group, err := models.GroupByID(tx, form.Group)
		if err != nil {
			return fields, models.NewValidationError("group", "Select a valid choice.")
		}
		fields.GroupID = &group.ID
	}
	fileHeader, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return fields, nil
	}
	if err != nil {
		return fields, models.NewValidationError("image", "Upload a valid image.")
	}
	if fields.Image, err = s.saveImage(fileHeader); err != nil {
		if errors.Is(err, errNoSpace) {
			return fields, models.NewValidationError("image", "Image uploads are temporarily unavailable.")
		}
		return fields, models.NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	return fields, nil
}

// saveImage shrinks the upload and stores it as JPEG, returning its storage path
func (s *Site) saveImage(fileHeader *multipart.FileHeader) (string, error) {
	if s.Storage.GetFreeSpace() < s.MinFreeSpace {
		return "", errNoSpace
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	buf := bytes.Buffer{}
	if _, err = utils.ConvertImage(s.ImageMaxSize, file, &buf); err != nil {
		return "", err
	}
	path := storage.NewImagePath()
	if _, err = s.Storage.Save(path, &buf, "image/jpeg"); err != nil {
		log.Printf("Cannot save image %s: %v", path, err)
		return "", err
	}
	return path, nil
}

func (s *Site) removeImage(path string) {
	if path == "" {
		return
	}
	if err := s.Storage.Delete(path); err != nil {
		log.Printf("Cannot delete image %s: %v", path, err)
	}
}
