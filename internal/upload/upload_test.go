package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minecrox/web-module/internal/domain/model"
	"github.com/minecrox/web-module/internal/filesapi"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeUploader — подменяет files API, считает вызовы.
type fakeUploader struct {
	mu    sync.Mutex
	calls int
	last  filesapi.UploadInput
	fn    func(in filesapi.UploadInput) (*model.UploadCreated, error)
}

func (f *fakeUploader) CreateUpload(_ context.Context, in filesapi.UploadInput) (*model.UploadCreated, error) {
	f.mu.Lock()
	f.calls++
	f.last = in
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(in)
	}
	return &model.UploadCreated{Slug: "new-pack"}, nil
}

func (f *fakeUploader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func zipFile(name string) *File {
	return &File{Name: name, Content: strings.NewReader("PK")}
}

func TestSubmit_NoFileNoRequest(t *testing.T) {
	api := &fakeUploader{}
	wf := NewWorkflow(api, false, testLogger())
	sub := &Submission{}

	_, err := wf.Submit(context.Background(), sub, "")
	if !errors.Is(err, ErrNoFile) {
		t.Fatalf("err = %v, ожидался ErrNoFile", err)
	}
	if api.Calls() != 0 {
		t.Errorf("вызовов API = %d, ожидалось 0", api.Calls())
	}
	if got := DisplayMessage(err); got.Key != "upload.error.no_file" {
		t.Errorf("DisplayMessage = %+v, ожидался ключ upload.error.no_file", got)
	}
	if sub.Status() != StatusFailed {
		t.Errorf("Status = %q, ожидался failed", sub.Status())
	}
}

func TestSubmit_NonZipAdvisoryStillSubmits(t *testing.T) {
	api := &fakeUploader{}
	wf := NewWorkflow(api, false, testLogger())
	sub := &Submission{File: zipFile("pack.rar")}

	if !sub.Advisory() {
		t.Error("Advisory() = false для .rar")
	}

	res, err := wf.Submit(context.Background(), sub, "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.Calls() != 1 {
		t.Errorf("вызовов API = %d, ожидался 1", api.Calls())
	}
	if res.Location != "/files/new-pack" {
		t.Errorf("Location = %q, ожидался /files/new-pack", res.Location)
	}
	if sub.Status() != StatusSucceeded {
		t.Errorf("Status = %q, ожидался succeeded", sub.Status())
	}
}

func TestSubmit_ServerErrorEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := filesapi.New(srv.URL, 5*time.Second, 5*time.Second, testLogger())
	wf := NewWorkflow(client, false, testLogger())
	sub := &Submission{File: zipFile("pack.zip")}

	_, err := wf.Submit(context.Background(), sub, "")
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}

	msg := DisplayMessage(err)
	if !strings.Contains(msg.Text, "500") {
		t.Errorf("сообщение %+v не содержит код 500", msg)
	}
	if sub.Status() != StatusFailed {
		t.Errorf("Status = %q, ожидался failed (submitting снят)", sub.Status())
	}
}

func TestSubmit_VerbatimUpstreamMessage(t *testing.T) {
	api := &fakeUploader{fn: func(filesapi.UploadInput) (*model.UploadCreated, error) {
		return nil, &filesapi.UploadFailedError{Status: 400, Message: "Zip contains unsafe paths"}
	}}
	wf := NewWorkflow(api, false, testLogger())

	_, err := wf.Submit(context.Background(), &Submission{File: zipFile("a.zip")}, "")
	if got := DisplayMessage(err); got.Text != "Zip contains unsafe paths" {
		t.Errorf("DisplayMessage = %+v, ожидался текст API как есть", got)
	}
}

func TestSubmit_NetworkErrorIsGeneric(t *testing.T) {
	api := &fakeUploader{fn: func(filesapi.UploadInput) (*model.UploadCreated, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	wf := NewWorkflow(api, false, testLogger())

	_, err := wf.Submit(context.Background(), &Submission{File: zipFile("a.zip")}, "")
	got := DisplayMessage(err)
	if got.Key != "upload.error.generic" || got.Text != "" {
		t.Errorf("DisplayMessage = %+v, ожидался общий ключ без текста ошибки", got)
	}
}

func TestSubmit_CaptchaGating(t *testing.T) {
	api := &fakeUploader{}
	wf := NewWorkflow(api, true, testLogger())

	_, err := wf.Submit(context.Background(), &Submission{File: zipFile("a.zip"), CaptchaToken: "   "}, "")
	if !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("err = %v, ожидался ErrCaptchaRequired", err)
	}
	if api.Calls() != 0 {
		t.Errorf("вызовов API = %d, ожидалось 0", api.Calls())
	}

	if _, err := wf.Submit(context.Background(), &Submission{File: zipFile("a.zip"), CaptchaToken: " tok "}, "1.2.3.4"); err != nil {
		t.Fatalf("Submit с токеном: %v", err)
	}
	if api.last.CaptchaToken != "tok" || api.last.ClientIP != "1.2.3.4" {
		t.Errorf("в API ушло %+v, ожидался токен tok и IP", api.last)
	}
}

func TestSubmit_BusyWhileSubmitting(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeUploader{fn: func(filesapi.UploadInput) (*model.UploadCreated, error) {
		close(entered)
		<-release
		return &model.UploadCreated{Slug: "s"}, nil
	}}
	wf := NewWorkflow(api, false, testLogger())
	sub := &Submission{File: zipFile("a.zip")}

	done := make(chan error, 1)
	go func() {
		_, err := wf.Submit(context.Background(), sub, "")
		done <- err
	}()

	<-entered
	if sub.Status() != StatusSubmitting {
		t.Errorf("Status = %q, ожидался submitting", sub.Status())
	}
	if _, err := wf.Submit(context.Background(), sub, ""); !errors.Is(err, ErrBusy) {
		t.Errorf("повторная отправка: err = %v, ожидался ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("первая отправка: %v", err)
	}
	if api.Calls() != 1 {
		t.Errorf("вызовов API = %d, ожидался 1", api.Calls())
	}
}

func TestSubmit_ResubmitAfterFailure(t *testing.T) {
	fail := true
	api := &fakeUploader{fn: func(filesapi.UploadInput) (*model.UploadCreated, error) {
		if fail {
			return nil, &filesapi.UploadFailedError{Status: 503, Message: "Upload failed (503)"}
		}
		return &model.UploadCreated{Slug: "ok"}, nil
	}}
	wf := NewWorkflow(api, false, testLogger())
	sub := &Submission{File: zipFile("a.zip")}

	if _, err := wf.Submit(context.Background(), sub, ""); err == nil {
		t.Fatal("ожидалась ошибка первой отправки")
	}
	if sub.LastError() == nil {
		t.Error("LastError() = nil после ошибки")
	}

	fail = false
	sub.File = zipFile("a.zip")
	if _, err := wf.Submit(context.Background(), sub, ""); err != nil {
		t.Fatalf("повторная отправка: %v", err)
	}
	if sub.LastError() != nil {
		t.Errorf("LastError() = %v после успеха", sub.LastError())
	}
}

func TestSubmit_PanicClearsSubmitting(t *testing.T) {
	api := &fakeUploader{fn: func(filesapi.UploadInput) (*model.UploadCreated, error) {
		panic("boom")
	}}
	wf := NewWorkflow(api, false, testLogger())
	sub := &Submission{File: zipFile("a.zip")}

	_, err := wf.Submit(context.Background(), sub, "")
	if err == nil {
		t.Fatal("ожидалась ошибка после паники")
	}
	if sub.Status() != StatusFailed {
		t.Errorf("Status = %q, ожидался failed", sub.Status())
	}
	if got := DisplayMessage(err); got.Key != "upload.error.generic" {
		t.Errorf("DisplayMessage = %+v, ожидался общий ключ", got)
	}
}

func TestHasAllowedExtension(t *testing.T) {
	tests := map[string]bool{
		"pack.zip":   true,
		"PACK.ZIP":   true,
		"pack.zip ":  true,
		"pack.rar":   false,
		"pack.zip.7": false,
		"zip":        false,
		"":           false,
	}
	for name, want := range tests {
		if got := HasAllowedExtension(name); got != want {
			t.Errorf("HasAllowedExtension(%q) = %v, ожидалось %v", name, got, want)
		}
	}
}

func TestExtensionNotice(t *testing.T) {
	var n ExtensionNotice
	if n.Visible() {
		t.Fatal("предупреждение видно до выбора файла")
	}

	steps := []struct {
		name    string
		action  func()
		visible bool
	}{
		{"выбран .txt", func() { n.Select("notes.txt") }, true},
		{"скрыто пользователем", n.Dismiss, false},
		{"снова выбран .txt", func() { n.Select("other.txt") }, true},
		{"выбран .zip", func() { n.Select("Pack.ZIP") }, false},
		{"выбран .jar", func() { n.Select("mod.jar") }, true},
		{"выбор отменён", func() { n.Select("") }, false},
	}
	for _, st := range steps {
		st.action()
		if n.Visible() != st.visible {
			t.Errorf("%s: Visible() = %v, ожидалось %v", st.name, n.Visible(), st.visible)
		}
	}
}

func TestSubmitLock(t *testing.T) {
	var l SubmitLock
	if !l.Acquire() {
		t.Fatal("первая отправка отклонена")
	}
	if l.Acquire() {
		t.Error("повторная отправка во время отправки разрешена")
	}
	l.Release()
	if !l.Acquire() {
		t.Error("после Release отправка отклонена")
	}
}
