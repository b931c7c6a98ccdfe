package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestDisplayTags(t *testing.T) {
	tests := []struct {
		name string
		tags *string
		want []string
	}{
		{"nil", nil, nil},
		{"пустая строка", strPtr(""), []string{}},
		{"trim и пустые", strPtr(" pvp , ,survival,, "), []string{"pvp", "survival"}},
		{"повторы", strPtr("a,b,a, b ,c"), []string{"a", "b", "c"}},
		{
			"ограничение 8",
			strPtr("t1,t2,t3,t4,t5,t6,t7,t8,t9,t10"),
			[]string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"},
		},
		{
			"повторы не занимают места",
			strPtr("x,x,x,t1,t2,t3,t4,t5,t6,t7"),
			[]string{"x", "t1", "t2", "t3", "t4", "t5", "t6", "t7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &FileRecord{Tags: tt.tags}
			got := f.DisplayTags()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DisplayTags() = %#v, ожидалось %#v", got, tt.want)
			}
		})
	}
}

func TestDisplayTags_KeepsSourceValue(t *testing.T) {
	raw := "a,b,c,d,e,f,g,h,i,j"
	f := &FileRecord{Tags: strPtr(raw)}
	_ = f.DisplayTags()

	if *f.Tags != raw {
		t.Errorf("Tags = %q после DisplayTags, исходное значение должно сохраниться", *f.Tags)
	}
}

func TestFileRecord_DecodeNullableFields(t *testing.T) {
	body := `{
		"id": "42", "filename": "pack.zip", "slug": "pack-1", "file_type": "resource_pack",
		"minecraft_version": null, "loader": "fabric", "description": null, "tags": null,
		"file_size": 2048, "sha1_hash": "abc123", "download_count": 7,
		"created_at": "2024-03-05T10:00:00", "last_download": null, "expire_at": "2024-04-05T10:00:00"
	}`

	var f FileRecord
	if err := json.Unmarshal([]byte(body), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if f.MinecraftVersion != nil {
		t.Errorf("MinecraftVersion = %q, ожидался nil", *f.MinecraftVersion)
	}
	if f.Loader == nil || *f.Loader != "fabric" {
		t.Errorf("Loader = %v, ожидался fabric", f.Loader)
	}
	if f.HasDescription() {
		t.Error("HasDescription() = true для null")
	}
	if f.LastDownload != nil {
		t.Error("LastDownload должен быть nil")
	}
	if f.CreatedAt != "2024-03-05T10:00:00" {
		t.Errorf("CreatedAt = %q, ожидалась исходная строка", f.CreatedAt)
	}
}

func TestHasDescription(t *testing.T) {
	if (&FileRecord{Description: strPtr("   ")}).HasDescription() {
		t.Error("HasDescription() = true для пробелов")
	}
	if !(&FileRecord{Description: strPtr("Hi")}).HasDescription() {
		t.Error("HasDescription() = false для непустого описания")
	}
}
