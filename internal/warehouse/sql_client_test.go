package warehouse

import (
	"reflect"
	"testing"
)

func TestDecodeValue_JSONArray(t *testing.T) {
	got := decodeValue([]byte(`[{"teamId": 42, "rank": 1}]`))

	list, ok := got.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected one decoded element, got %T %v", got, got)
	}
	element, ok := list[0].(map[string]any)
	if !ok {
		t.Fatalf("expected decoded object, got %T", list[0])
	}
	if element["teamId"] != float64(42) || element["rank"] != float64(1) {
		t.Fatalf("unexpected element: %+v", element)
	}
}

func TestDecodeValue_PlainBytesBecomeString(t *testing.T) {
	if got := decodeValue([]byte("VBC Wiedikon")); got != "VBC Wiedikon" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestDecodeValue_MalformedJSONKeptAsText(t *testing.T) {
	if got := decodeValue([]byte("{not json")); got != "{not json" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestDecodeValue_PassThrough(t *testing.T) {
	if got := decodeValue(int64(7)); got != int64(7) {
		t.Fatalf("unexpected value: %v", got)
	}
	if got := decodeValue(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := decodeValue([]byte{}); !reflect.DeepEqual(got, "") {
		t.Fatalf("expected empty string, got %v", got)
	}
}
