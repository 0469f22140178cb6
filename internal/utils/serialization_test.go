package utils

import "testing"

func TestSerializeToJSON(t *testing.T) {
	data, err := SerializeToJSON(map[string]int{"count": 3})
	if err != nil {
		t.Fatalf("SerializeToJSON: %v", err)
	}
	if string(data) != `{"count":3}` {
		t.Errorf("data = %s", data)
	}

	if _, err := SerializeToJSON(make(chan int)); err == nil {
		t.Error("unserializable value should return an error")
	}
}

func TestDeserializeFromJSON(t *testing.T) {
	var decoded map[string]int
	if err := DeserializeFromJSON([]byte(`{"count":3}`), &decoded); err != nil {
		t.Fatalf("DeserializeFromJSON: %v", err)
	}
	if decoded["count"] != 3 {
		t.Errorf("count = %d, want 3", decoded["count"])
	}

	if err := DeserializeFromJSON([]byte("not json"), &decoded); err == nil {
		t.Error("malformed input should return an error")
	}
}
