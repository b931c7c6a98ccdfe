package service

import (
	"strings"
	"testing"

	"github.com/minecrox/web-module/internal/domain/model"
)

func TestDerive_ExamplePack(t *testing.T) {
	s := NewArtifactService("https://api.example.com", 16)
	a := s.Derive(&model.FileRecord{Slug: "example-pack-1", SHA1Hash: "abc123"})

	const wantURL = "https://api.example.com/download/example-pack-1"
	if a.DownloadURL != wantURL {
		t.Errorf("DownloadURL = %q, ожидался %q", a.DownloadURL, wantURL)
	}

	lines := strings.Split(a.ServerConfigSnippet, "\n")
	if len(lines) != 2 {
		t.Fatalf("сниппет = %q, ожидались 2 строки", a.ServerConfigSnippet)
	}
	if !strings.Contains(lines[0], wantURL) {
		t.Errorf("первая строка %q не содержит URL", lines[0])
	}
	if !strings.Contains(lines[1], "abc123") {
		t.Errorf("вторая строка %q не содержит хэш", lines[1])
	}
	if a.ServerConfigSnippet != "resource-pack="+wantURL+"\nresource-pack-sha1=abc123" {
		t.Errorf("сниппет = %q", a.ServerConfigSnippet)
	}
}

func TestDerive_MemoizedPerKey(t *testing.T) {
	s := NewArtifactService("https://api.example.com/", 16)
	f := &model.FileRecord{Slug: "pack", SHA1Hash: "aaa"}

	first := s.Derive(f)
	second := s.Derive(&model.FileRecord{Slug: "pack", SHA1Hash: "aaa", DownloadCount: 99})
	if first != second {
		t.Error("для одинаковых (slug, sha1, base) ожидался тот же *Artifacts")
	}

	changed := s.Derive(&model.FileRecord{Slug: "pack", SHA1Hash: "bbb"})
	if changed == first {
		t.Error("при смене sha1 ожидались новые артефакты")
	}
	if !strings.HasSuffix(changed.ServerConfigSnippet, "resource-pack-sha1=bbb") {
		t.Errorf("сниппет = %q, ожидался новый хэш", changed.ServerConfigSnippet)
	}
}

func TestDownloadURL_EncodesReservedCharacters(t *testing.T) {
	got := DownloadURL("https://api.example.com", "a/b?c#d e")
	want := "https://api.example.com/download/a%2Fb%3Fc%23d%20e"
	if got != want {
		t.Errorf("DownloadURL = %q, ожидался %q", got, want)
	}
}

func TestDownloadURL_Injective(t *testing.T) {
	slugs := []string{
		"pack", "pack ", "pack%20", "pack/1", "pack%2F1", "Pack", "a+b", "a b", "a%2Bb", "ü", "%C3%BC",
	}
	seen := make(map[string]string, len(slugs))
	for _, slug := range slugs {
		u := DownloadURL("https://api.example.com", slug)
		if prev, dup := seen[u]; dup {
			t.Errorf("slug %q и %q дают одинаковый URL %q", prev, slug, u)
		}
		seen[u] = slug
	}
}
