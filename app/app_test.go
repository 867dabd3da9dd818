package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	config "examportal/configs"
	"examportal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
)

// newTestApp wires the full app against a stubbed backend, with views loaded
// from the real views directory.
func newTestApp(t *testing.T, mux *http.ServeMux) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return New(&config.Config{
		BackendURL: srv.URL,
		CookieKey:  encryptcookie.GenerateKey(),
		ViewsDir:   "../views",
	})
}

// loginMux stubs the one endpoint every flow starts with.
func loginMux(role string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-1","token_type":"bearer","user":{"id":1,"username":"u1","name":"User One","role":%q}}`, role)
	})
	return mux
}

func login(t *testing.T, app *fiber.App) []*http.Cookie {
	t.Helper()
	resp := postForm(t, app, "/login", url.Values{"username": {"u1"}, "password": {"secret"}}, nil)
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("login status = %d, want %d", resp.StatusCode, fiber.StatusFound)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no cookies")
	}
	return cookies
}

func get(t *testing.T, app *fiber.App, path string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(raw)
}

func TestLoginRedirectsByRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"student", "/dashboard"},
		{"teacher", "/teacher/dashboard"},
	}
	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			app := newTestApp(t, loginMux(tc.role))
			resp := postForm(t, app, "/login", url.Values{"username": {"u1"}, "password": {"secret"}}, nil)
			if resp.StatusCode != fiber.StatusFound {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Location"); got != tc.want {
				t.Errorf("Location = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginRejectedStaysOnPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Incorrect username or password"}`)
	})
	app := newTestApp(t, mux)

	resp := postForm(t, app, "/login", url.Values{"username": {"u1"}, "password": {"wrong"}}, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if page := body(t, resp); !strings.Contains(page, "Invalid credentials") {
		t.Error("page does not show the invalid-credentials message")
	}
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	app := newTestApp(t, loginMux("student"))

	for _, path := range []string{"/dashboard", "/my-results", "/teacher/dashboard", "/teacher/tests"} {
		resp := get(t, app, path, nil)
		if resp.StatusCode != fiber.StatusFound {
			t.Errorf("GET %s: status = %d, want redirect", path, resp.StatusCode)
			continue
		}
		if got := resp.Header.Get("Location"); got != "/login" {
			t.Errorf("GET %s: Location = %q, want /login", path, got)
		}
	}
}

func TestRoleGuards(t *testing.T) {
	t.Run("student blocked from teacher pages", func(t *testing.T) {
		app := newTestApp(t, loginMux("student"))
		cookies := login(t, app)

		resp := get(t, app, "/teacher/dashboard", cookies)
		if resp.StatusCode != fiber.StatusFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Location"); got != "/dashboard" {
			t.Errorf("Location = %q, want /dashboard", got)
		}
	})

	t.Run("teacher blocked from student pages", func(t *testing.T) {
		app := newTestApp(t, loginMux("teacher"))
		cookies := login(t, app)

		resp := get(t, app, "/dashboard", cookies)
		if resp.StatusCode != fiber.StatusFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Location"); got != "/teacher/dashboard" {
			t.Errorf("Location = %q, want /teacher/dashboard", got)
		}
	})
}

func TestBackendUnauthorizedClearsSession(t *testing.T) {
	mux := loginMux("student")
	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	mux.HandleFunc("/student/available-tests/", unauthorized)
	mux.HandleFunc("/student/my-results/", unauthorized)
	app := newTestApp(t, mux)
	cookies := login(t, app)

	resp := get(t, app, "/dashboard", cookies)
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want redirect", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want /login", got)
	}

	cleared := false
	for _, ck := range resp.Cookies() {
		if ck.Name == "exam_token" && ck.Expires.Before(time.Now()) {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session token cookie was not expired")
	}
}

func TestStudentDashboardJoinsResults(t *testing.T) {
	mux := loginMux("student")
	mux.HandleFunc("/student/available-tests/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":5,"title":"Алгебра","description":"Базовый тест"},{"id":6,"title":"Геометрия","description":""}]`)
	})
	mux.HandleFunc("/student/my-results/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"test_id":5,"score":85.0,"timestamp":"2026-08-01T10:00:00Z"}]`)
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	resp := get(t, app, "/dashboard", cookies)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	page := body(t, resp)
	for _, want := range []string{"Алгебра", "Геометрия", "85.0"} {
		if !strings.Contains(page, want) {
			t.Errorf("dashboard is missing %q", want)
		}
	}
}

func TestSubmitBlockedWhenUnanswered(t *testing.T) {
	mux := loginMux("student")
	mux.HandleFunc("/student/test/5/questions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":1,"test_id":5,"text":"2+2?","options":["3","4","Не знаю"],"correct_answer":"4"},
			{"id":2,"test_id":5,"text":"3*3?","options":["9","6","Не знаю"],"correct_answer":"9"}
		]`)
	})
	mux.HandleFunc("/student/submit-test/", func(w http.ResponseWriter, r *http.Request) {
		t.Error("submission reached the backend despite unanswered questions")
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	resp := postForm(t, app, "/test/5", url.Values{"question_1": {"4"}}, cookies)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", resp.StatusCode)
	}
	if page := body(t, resp); !strings.Contains(page, "1 questions remaining") {
		t.Error("page does not show the remaining-questions message")
	}
}

func TestSubmitForwardsAnswersInOrder(t *testing.T) {
	mux := loginMux("student")
	mux.HandleFunc("/student/test/5/questions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":2,"test_id":5,"text":"3*3?","options":["9","6","Не знаю"],"correct_answer":"9"},
			{"id":1,"test_id":5,"text":"2+2?","options":["3","4","Не знаю"],"correct_answer":"4"}
		]`)
	})
	var submission models.TestSubmission
	mux.HandleFunc("/student/submit-test/", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
			t.Errorf("decode submission: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":1,"test_id":5,"score":50.0,"timestamp":"2026-08-01T10:00:00Z"}`)
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	resp := postForm(t, app, "/test/5", url.Values{
		"question_1": {"4"},
		"question_2": {models.DontKnowAnswer},
	}, cookies)
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want redirect", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/result/5" {
		t.Errorf("Location = %q, want /result/5", got)
	}

	if len(submission.Answers) != 2 {
		t.Fatalf("backend received %d answers, want 2", len(submission.Answers))
	}
	// Answers follow question order, not form order.
	if submission.Answers[0].QuestionID != 2 || submission.Answers[0].Answer != models.DontKnowAnswer {
		t.Errorf("first answer = %+v", submission.Answers[0])
	}
	if submission.Answers[1].QuestionID != 1 || submission.Answers[1].Answer != "4" {
		t.Errorf("second answer = %+v", submission.Answers[1])
	}
}

func TestTeacherDashboardRendersData(t *testing.T) {
	mux := loginMux("teacher")
	mux.HandleFunc("/teacher/users/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"username":"u1","name":"User One","role":"teacher"},{"id":2,"username":"masha","name":"Мария","role":"student"}]`)
	})
	mux.HandleFunc("/teacher/tests/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":5,"title":"Алгебра","description":""}]`)
	})
	mux.HandleFunc("/teacher/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"name":"Уравнения"}]`)
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	resp := get(t, app, "/teacher/dashboard", cookies)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	page := body(t, resp)
	for _, want := range []string{"Мария", "Алгебра", "Уравнения"} {
		if !strings.Contains(page, want) {
			t.Errorf("dashboard is missing %q", want)
		}
	}
}

func TestMyResultsNewestFirst(t *testing.T) {
	mux := loginMux("student")
	mux.HandleFunc("/student/my-results/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":1,"test_id":5,"score":70.0,"timestamp":"2026-08-01T10:00:00Z"},
			{"id":2,"test_id":6,"score":90.0,"timestamp":"2026-08-20T10:00:00Z"}
		]`)
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	resp := get(t, app, "/my-results", cookies)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	page := body(t, resp)
	newer := strings.Index(page, "Test #6")
	older := strings.Index(page, "Test #5")
	if newer == -1 || older == -1 {
		t.Fatalf("results missing from page (newer=%d, older=%d)", newer, older)
	}
	if newer > older {
		t.Error("results are not sorted newest-first")
	}
}

func uploadRequest(t *testing.T, filename string, content []byte, cookies []*http.Cookie) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func TestUploadAcceptsImagesUpToLimit(t *testing.T) {
	mux := loginMux("teacher")
	mux.HandleFunc("/upload/image", func(w http.ResponseWriter, r *http.Request) {
		if _, header, err := r.FormFile("file"); err != nil {
			t.Errorf("FormFile: %v", err)
		} else if header.Filename != "diagram.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"url":"/uploads/abc.png","filename":"abc.png"}`)
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	// Between Fiber's 4MB default body limit and the 5MB cap.
	content := bytes.Repeat([]byte{0xa1}, 4_500_000)
	resp, err := app.Test(uploadRequest(t, "diagram.png", content, cookies), -1)
	if err != nil {
		t.Fatalf("POST /upload/image: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if page := body(t, resp); !strings.Contains(page, "/uploads/abc.png") {
		t.Error("response does not carry the uploaded image URL")
	}
}

func TestUploadRejectsOversizeImage(t *testing.T) {
	mux := loginMux("teacher")
	mux.HandleFunc("/upload/image", func(w http.ResponseWriter, r *http.Request) {
		t.Error("oversized file reached the backend")
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	content := bytes.Repeat([]byte{0xa1}, 5*1024*1024+1)
	resp, err := app.Test(uploadRequest(t, "diagram.png", content, cookies), -1)
	if err != nil {
		t.Fatalf("POST /upload/image: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if page := body(t, resp); !strings.Contains(page, "less than 5MB") {
		t.Error("response does not name the size limit")
	}
}

func TestDeleteImageProxied(t *testing.T) {
	mux := loginMux("teacher")
	deleted := false
	mux.HandleFunc("/upload/image/abc.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		deleted = true
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	req := httptest.NewRequest(http.MethodDelete, "/upload/image/abc.png", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("DELETE /upload/image/abc.png: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if !deleted {
		t.Error("delete never reached the backend")
	}
}

func TestUploadRejectsBadExtension(t *testing.T) {
	mux := loginMux("teacher")
	mux.HandleFunc("/upload/image", func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid file reached the backend")
	})
	app := newTestApp(t, mux)
	cookies := login(t, app)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	io.WriteString(part, "not an image")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST /upload/image: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if page := body(t, resp); !strings.Contains(page, "valid image file") {
		t.Error("response does not name the allowed image types")
	}
}
