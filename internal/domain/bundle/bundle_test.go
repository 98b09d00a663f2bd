package bundle

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestMarshalJSON_Deterministic(t *testing.T) {
	build := func() Bundle {
		return Bundle{
			KeyTooltips:             map[string]string{"b": "2", "a": "1"},
			KeyDeepCategoryEnabled:  true,
			KeyExplicitNamespaceURL: nil,
			KeyMimeTypes:            map[string]string{"png": "image/png", "gif": "image/gif"},
		}
	}

	first, err := json.Marshal(build())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 20; i++ {
		next, err := json.Marshal(build())
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !bytes.Equal(first, next) {
			t.Fatalf("non-deterministic output:\n%s\n%s", first, next)
		}
	}
}

func TestMarshalJSON_NilURLIsNull(t *testing.T) {
	data, err := json.Marshal(Bundle{KeyExplicitNamespaceURL: nil})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"advancedSearch.explicitNamespaceURL":null}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestHas(t *testing.T) {
	b := Bundle{KeyExplicitNamespaceURL: nil}
	if !b.Has(KeyExplicitNamespaceURL) {
		t.Error("nil value should count as set")
	}
	if b.Has(KeyLanguages) {
		t.Error("languages should be absent")
	}
}
