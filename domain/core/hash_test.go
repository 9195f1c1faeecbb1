package core

import (
	"encoding/json"
	"testing"
	"time"
)

// TestComputeInputHash tests that equal inputs fingerprint equally and any
// change to kind or flags changes the fingerprint
func TestComputeInputHash(t *testing.T) {
	a := ComputeInputHash("mle-weibull", []float64{1.5, 2, 3}, []int{0, 1, 0})
	b := ComputeInputHash("mle-weibull", []float64{1.5, 2, 3}, []int{0, 1, 0})
	if a != b {
		t.Errorf("Expected equal hashes, got %s and %s", a, b)
	}
	if len(a.String()) != 64 {
		t.Errorf("Expected 64 hex digits, got %d", len(a.String()))
	}

	if a == ComputeInputHash("mle-normal", []float64{1.5, 2, 3}, []int{0, 1, 0}) {
		t.Error("Expected kind to change the hash")
	}
	if a == ComputeInputHash("mle-weibull", []float64{1.5, 2, 3}, []int{0, 0, 0}) {
		t.Error("Expected flags to change the hash")
	}
	if ComputeInputHash("anova", []float64{1, 2}, nil) != ComputeInputHash("anova", []float64{1, 2}, []int{0, 0}) {
		t.Error("Expected missing flags to hash like zero flags")
	}
}

// TestHashShort tests truncation of long and short hashes
func TestHashShort(t *testing.T) {
	if got := NewHash([]byte("x")).Short(); len(got) != 12 {
		t.Errorf("Expected 12 characters, got %q", got)
	}
	if got := Hash("abc").Short(); got != "abc" {
		t.Errorf("Expected abc, got %q", got)
	}
}

// TestTimestampJSON tests RFC 3339 round-tripping
func TestTimestampJSON(t *testing.T) {
	ts := Timestamp(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2024-03-01T12:00:00Z"` {
		t.Errorf("Unexpected JSON %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Time().Equal(ts.Time()) {
		t.Errorf("Expected %s, got %s", ts, back)
	}
	if Now().IsZero() {
		t.Error("Now() should not be zero")
	}
}
