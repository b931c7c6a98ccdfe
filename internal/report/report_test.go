package report

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/minecrox/web-module/internal/domain/model"
	"github.com/minecrox/web-module/internal/filesapi"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeReporter struct {
	calls int
	last  model.ReportRequest
	err   error
}

func (f *fakeReporter) CreateReport(_ context.Context, r model.ReportRequest, _ string) error {
	f.calls++
	f.last = r
	return f.err
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		slug   string
		reason string
		email  string
		want   error
	}{
		{"валидная форма", "pack-1", "malware", "", nil},
		{"с email", "pack-1", "malware", "a@b.c", nil},
		{"пустой slug", "  ", "malware", "", ErrSlugRequired},
		{"длинный slug", strings.Repeat("s", 256), "malware", "", ErrSlugTooLong},
		{"slug на границе", strings.Repeat("s", 255), "abc", "", nil},
		{"короткая причина", "p", " ab ", "", ErrReasonTooShort},
		{"длинная причина", "p", strings.Repeat("r", 2001), "", ErrReasonTooLong},
		{"длинный email", "p", "abc", strings.Repeat("e", 320) + "@x", ErrEmailTooLong},
		{"email без @", "p", "abc", "nobody", ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.slug, tt.reason, tt.email); !errors.Is(got, tt.want) {
				t.Errorf("Validate() = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	api := &fakeReporter{}
	wf := NewWorkflow(api, false, testLogger())
	f := &Form{Slug: " pack-1 ", Reason: " broken zip ", Email: ""}

	if err := wf.Submit(context.Background(), f, ""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if f.Status() != StatusSent {
		t.Errorf("Status = %q, ожидался sent", f.Status())
	}
	if api.last.Slug != "pack-1" || api.last.Reason != "broken zip" {
		t.Errorf("запрос = %+v, ожидались обрезанные значения", api.last)
	}
	if api.last.Email != nil {
		t.Errorf("Email = %q, ожидался nil", *api.last.Email)
	}
}

func TestSubmit_ValidationNoRequest(t *testing.T) {
	api := &fakeReporter{}
	wf := NewWorkflow(api, false, testLogger())
	f := &Form{Slug: "pack-1", Reason: "x"}

	err := wf.Submit(context.Background(), f, "")
	if !errors.Is(err, ErrReasonTooShort) {
		t.Fatalf("err = %v, ожидался ErrReasonTooShort", err)
	}
	if api.calls != 0 {
		t.Errorf("вызовов API = %d, ожидалось 0", api.calls)
	}
	if f.Status() != StatusError {
		t.Errorf("Status = %q, ожидался error", f.Status())
	}
	if got := DisplayMessage(err); got.Key != "report.error.reason_too_short" {
		t.Errorf("DisplayMessage = %+v", got)
	}
}

func TestSubmit_CaptchaGating(t *testing.T) {
	api := &fakeReporter{}
	wf := NewWorkflow(api, true, testLogger())

	err := wf.Submit(context.Background(), &Form{Slug: "p", Reason: "abc"}, "")
	if !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("err = %v, ожидался ErrCaptchaRequired", err)
	}
	if api.calls != 0 {
		t.Errorf("вызовов API = %d, ожидалось 0", api.calls)
	}

	if err := wf.Submit(context.Background(), &Form{Slug: "p", Reason: "abc", CaptchaToken: "tok"}, ""); err != nil {
		t.Fatalf("Submit с токеном: %v", err)
	}
	if api.last.CaptchaToken != "tok" {
		t.Errorf("CaptchaToken = %q, ожидался tok", api.last.CaptchaToken)
	}
}

func TestSubmit_UpstreamFailure(t *testing.T) {
	api := &fakeReporter{err: &filesapi.ReportFailedError{Status: 404, Message: `{"detail":"File not found"}`}}
	wf := NewWorkflow(api, false, testLogger())
	f := &Form{Slug: "p", Reason: "abc"}

	err := wf.Submit(context.Background(), f, "")
	if f.Status() != StatusError {
		t.Errorf("Status = %q, ожидался error", f.Status())
	}
	if got := DisplayMessage(err); got.Text != `{"detail":"File not found"}` {
		t.Errorf("DisplayMessage = %+v, ожидался ответ API как есть", got)
	}
}

func TestDisplayMessage_GenericForNetworkErrors(t *testing.T) {
	got := DisplayMessage(errors.New("context deadline exceeded"))
	if got.Key != "report.error.generic" || got.Text != "" {
		t.Errorf("DisplayMessage = %+v, ожидался общий ключ", got)
	}
	if !DisplayMessage(nil).IsZero() {
		t.Error("DisplayMessage(nil) должен быть пустым")
	}
}
