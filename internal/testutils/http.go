package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

type RequestOption func(req *http.Request) *http.Request

func WithHeader(key string, value string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.Header.Add(key, value)
		return req
	}
}

func WithCookies(cookies []*http.Cookie) RequestOption {
	return func(req *http.Request) *http.Request {
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return req
	}
}

// = WithHeader("Content-Type", ctyp)
func ContentType(ctyp string) RequestOption {
	return WithHeader("Content-Type", ctyp)
}

func Do(router *gin.Engine, method, target string, body io.Reader, reqopts ...RequestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for _, opt := range reqopts {
		req = opt(req)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func Get(router *gin.Engine, target string, reqopts ...RequestOption) *httptest.ResponseRecorder {
	return Do(router, http.MethodGet, target, nil, reqopts...)
}

// PostForm sends an url-encoded form
func PostForm(router *gin.Engine, target string, form url.Values, reqopts ...RequestOption) *httptest.ResponseRecorder {
	reqopts = append([]RequestOption{ContentType("application/x-www-form-urlencoded")}, reqopts...)
	return Do(router, http.MethodPost, target, strings.NewReader(form.Encode()), reqopts...)
}
