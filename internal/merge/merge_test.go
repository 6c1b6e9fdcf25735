package merge

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return v
}

func TestExtend(t *testing.T) {
	tests := []struct {
		name string
		dst  string
		src  string
		want string
	}{
		{"adds missing keys", `{"a":1}`, `{"b":2}`, `{"a":1,"b":2}`},
		{"src wins on conflict", `{"a":1}`, `{"a":2}`, `{"a":2}`},
		{"nested objects merge", `{"db":{"host":"x","port":1}}`, `{"db":{"port":2,"user":"u"}}`, `{"db":{"host":"x","port":2,"user":"u"}}`},
		{"arrays merge by index", `{"l":[1,{"a":1},3]}`, `{"l":[9,{"b":2}]}`, `{"l":[9,{"a":1,"b":2},3]}`},
		{"arrays grow", `[1]`, `[2,3]`, `[2,3]`},
		{"object replaces scalar", `{"a":1}`, `{"a":{"b":1}}`, `{"a":{"b":1}}`},
		{"null member overrides", `{"a":1}`, `{"a":null}`, `{"a":null}`},
		{"nil root keeps dst", `{"a":1}`, `null`, `{"a":1}`},
		{"scalar roots", `1`, `"x"`, `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extend(decode(t, tt.dst), decode(t, tt.src))
			want := decode(t, tt.want)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Extend(%s, %s) = %v, want %v", tt.dst, tt.src, got, want)
			}
		})
	}
}

func TestExtendDoesNotAliasSource(t *testing.T) {
	src := decode(t, `{"nested":{"a":1}}`)
	got := Extend(nil, src).(map[string]any)

	got["nested"].(map[string]any)["a"] = 2.0
	if src.(map[string]any)["nested"].(map[string]any)["a"] != 1.0 {
		t.Fatal("Extend aliased a nested source map")
	}
}
