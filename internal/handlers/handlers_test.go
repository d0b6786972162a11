package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/healthify-app/healthify-api/internal/config"
	"github.com/healthify-app/healthify-api/internal/db"
	"github.com/healthify-app/healthify-api/internal/models"
	"github.com/healthify-app/healthify-api/internal/otp"
	"github.com/healthify-app/healthify-api/internal/routes"
	"github.com/healthify-app/healthify-api/internal/storage"
	"github.com/healthify-app/healthify-api/internal/store"
	"github.com/healthify-app/healthify-api/internal/token"
)

// fakeMailer records outgoing codes instead of dialing SMTP.
type fakeMailer struct {
	codes map[string]string // "purpose:email" -> code
	fail  bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: map[string]string{}}
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (m *fakeMailer) SendOTP(to, code string, purpose otp.Purpose) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.codes[fmt.Sprintf("%s:%s", purpose, to)] = code
	return nil
}

func (m *fakeMailer) code(purpose otp.Purpose, email string) string {
	return m.codes[fmt.Sprintf("%s:%s", purpose, email)]
}

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	mail   *fakeMailer
	users  *store.UserStore
	cfg    *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Env:         "test",
		JWTSecret:   "test-secret",
		AdminSecret: "letmein",
	}

	local, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}

	mail := newFakeMailer()

	r := gin.New()
	routes.RegisterRoutes(r, gdb, cfg, routes.Deps{
		Mailer:  mail,
		Storage: local,
		Limiter: nil,
	})

	return &testApp{
		router: r,
		db:     gdb,
		mail:   mail,
		users:  store.NewUserStore(gdb),
		cfg:    cfg,
	}
}

func (a *testApp) postJSON(path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, body, cookies...)
}

func (a *testApp) putJSON(path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(http.MethodPut, path, body, cookies...)
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, nil, cookies...)
}

func (a *testApp) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == token.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

// registerAndVerify walks a patient through the registration flow.
func (a *testApp) registerAndVerify(t *testing.T, email, password string) {
	t.Helper()

	w := a.postJSON("/healthify/auth/register", gin.H{
		"email": email, "name": "Test User", "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	code := a.mail.code(otp.PurposeRegister, email)
	if code == "" {
		t.Fatal("no OTP was mailed")
	}

	w = a.postJSON("/healthify/auth/verify-otp", gin.H{"email": email, "otp": code})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", w.Code, w.Body.String())
	}
}

func (a *testApp) login(t *testing.T, email, password, role string) *http.Cookie {
	t.Helper()

	body := gin.H{"email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	w := a.postJSON("/healthify/auth/login", body)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}

func (a *testApp) seedAdmin(t *testing.T, email string) *models.User {
	t.Helper()

	u := models.User{Email: email, Name: "Admin", Role: models.RoleAdmin, Verified: true}
	if err := a.users.Create(context.Background(), &u, "admin-password"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return &u
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		ErrorCode string `json:"error_code"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	if body.ErrorCode != "" {
		return body.ErrorCode
	}
	return body.Error
}

// --------- multipart helpers ---------

type formFile struct {
	field, name string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string][]string, file *formFile) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(file.field, file.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(file.content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func (a *testApp) doMultipart(method, path string, fields map[string][]string, file *formFile, t *testing.T, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	body, contentType := multipartBody(t, fields, file)

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
