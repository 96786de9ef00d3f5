package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/radif/mediadrop/internal/auth"
	"github.com/radif/mediadrop/internal/files"
	appMiddleware "github.com/radif/mediadrop/internal/middleware"
	"github.com/radif/mediadrop/internal/storage"
)

const testPassword = "correct horse battery staple"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type RouterTestSuite struct {
	suite.Suite
	srv *httptest.Server
	mem *storage.MemoryBucket
}

func (s *RouterTestSuite) SetupTest() {
	c := &clock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	s.mem = storage.NewMemoryBucket().WithClock(c.Now)
	gw := storage.NewGateway(s.mem, "https://cdn.example.com", "https://files.example.com").WithClock(c.Now)

	authSvc := auth.NewService(auth.NewRepository(), testPassword, time.Hour)
	router := NewRouter(Deps{
		Auth:           auth.NewHandler(authSvc, false),
		Files:          files.NewHandler(files.NewService(gw, 1<<20, 1<<16)),
		Sessions:       authSvc,
		Limiter:        appMiddleware.NewLoginLimiter(3),
		AllowedOrigins: []string{"https://files.example.com"},
	})
	s.srv = httptest.NewServer(router)
}

func (s *RouterTestSuite) TearDownTest() {
	s.srv.Close()
}

func (s *RouterTestSuite) request(method, path string, body *bytes.Buffer, contentType string, cookie *http.Cookie) (*http.Response, map[string]interface{}) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, s.srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, s.srv.URL+path, nil)
	}
	s.Require().NoError(err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out map[string]interface{}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func (s *RouterTestSuite) login(password string) (*http.Response, *http.Cookie) {
	body := bytes.NewBufferString(`{"password":` + jsonString(password) + `}`)
	resp, _ := s.request(http.MethodPost, "/api/auth", body, "application/json", nil)
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return resp, c
		}
	}
	return resp, nil
}

func (s *RouterTestSuite) upload(cookie *http.Cookie, filename string, content []byte) map[string]interface{} {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	resp, body := s.request(http.MethodPost, "/api/upload", &buf, mw.FormDataContentType(), cookie)
	s.Require().Equal(http.StatusOK, resp.StatusCode, body)
	return body["file"].(map[string]interface{})
}

func (s *RouterTestSuite) listKeys(cookie *http.Cookie) []string {
	resp, body := s.request(http.MethodGet, "/api/files", nil, "", cookie)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var keys []string
	for _, f := range body["files"].([]interface{}) {
		keys = append(keys, f.(map[string]interface{})["key"].(string))
	}
	s.Equal(float64(len(keys)), body["count"])
	return keys
}

func jsonString(v string) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func (s *RouterTestSuite) TestHealth() {
	resp, body := s.request(http.MethodGet, "/health", nil, "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])
}

func (s *RouterTestSuite) TestProtectedRoutesRequireSession() {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/files"},
		{http.MethodGet, "/api/files/some.png"},
		{http.MethodDelete, "/api/files/some.png"},
		{http.MethodPost, "/api/upload"},
		{http.MethodGet, "/api/usage"},
	}
	stale := &http.Cookie{Name: auth.CookieName, Value: strings.Repeat("ab", 32)}
	for _, rt := range routes {
		for _, c := range []*http.Cookie{nil, stale} {
			resp, body := s.request(rt.method, rt.path, nil, "", c)
			s.Equal(http.StatusUnauthorized, resp.StatusCode, rt.path)
			s.Equal("Unauthorized", body["error"], rt.path)
		}
	}
}

func (s *RouterTestSuite) TestAuthLifecycle() {
	resp, _ := s.login("wrong")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, cookie := s.login(testPassword)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NotNil(cookie)
	s.Equal(3600, cookie.MaxAge)

	resp, body := s.request(http.MethodGet, "/api/auth", nil, "", cookie)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["authenticated"])

	resp, _ = s.request(http.MethodDelete, "/api/auth", nil, "", cookie)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, body = s.request(http.MethodGet, "/api/auth", nil, "", cookie)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal(false, body["authenticated"])

	resp, _ = s.request(http.MethodGet, "/api/files", nil, "", cookie)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterTestSuite) TestLoginIsThrottled() {
	for i := 0; i < 3; i++ {
		resp, _ := s.login("wrong")
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	}
	body := bytes.NewBufferString(`{"password":` + jsonString(testPassword) + `}`)
	resp, out := s.request(http.MethodPost, "/api/auth", body, "application/json", nil)
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("Retry-After"))
	s.Equal("Too many login attempts", out["error"])
}

func (s *RouterTestSuite) TestLoginThrottleIgnoresForwardedHeaders() {
	statuses := map[int]int{}
	for i := 0; i < 10; i++ {
		req, err := http.NewRequest(http.MethodPost, s.srv.URL+"/api/auth",
			bytes.NewBufferString(`{"password":"wrong"}`))
		s.Require().NoError(err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))

		resp, err := http.DefaultClient.Do(req)
		s.Require().NoError(err)
		resp.Body.Close()
		statuses[resp.StatusCode]++
	}

	s.Equal(3, statuses[http.StatusUnauthorized])
	s.Equal(7, statuses[http.StatusTooManyRequests])
}

func TestLoginThrottleTrustsProxyWhenEnabled(t *testing.T) {
	authSvc := auth.NewService(auth.NewRepository(), testPassword, time.Hour)
	gw := storage.NewGateway(storage.NewMemoryBucket(), "", "")
	router := NewRouter(Deps{
		Auth:       auth.NewHandler(authSvc, false),
		Files:      files.NewHandler(files.NewService(gw, 1<<20, 1<<16)),
		Sessions:   authSvc,
		Limiter:    appMiddleware.NewLoginLimiter(1),
		TrustProxy: true,
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func (s *RouterTestSuite) TestUploadListDelete() {
	_, cookie := s.login(testPassword)
	s.Require().NotNil(cookie)

	first := s.upload(cookie, "first.png", []byte("one"))
	second := s.upload(cookie, "second clip.mp4", []byte("second"))

	firstKey := first["key"].(string)
	secondKey := second["key"].(string)
	s.True(strings.HasSuffix(firstKey, "_first.png"))
	s.True(strings.HasSuffix(secondKey, "_second_clip.mp4"))

	s.Equal([]string{secondKey, firstKey}, s.listKeys(cookie))

	resp, body := s.request(http.MethodGet, "/api/files/"+url.PathEscape(secondKey), nil, "", cookie)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("video", body["mediaType"])
	s.Equal(float64(6), body["size"])

	resp, body = s.request(http.MethodGet, "/api/usage", nil, "", cookie)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(float64(9), body["used"])
	s.Equal(float64(2), body["fileCount"])

	resp, _ = s.request(http.MethodDelete, "/api/files/"+url.PathEscape(firstKey), nil, "", cookie)
	s.Equal(http.StatusOK, resp.StatusCode)

	s.Equal([]string{secondKey}, s.listKeys(cookie))
	_, ok := s.mem.Object(firstKey)
	s.False(ok)

	resp, _ = s.request(http.MethodGet, "/api/files/"+url.PathEscape(firstKey), nil, "", cookie)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
