package checksum

import "testing"

func TestSum_Stable(t *testing.T) {
	a := Sum([]byte("# Title\n===\nbody\n"))
	b := Sum([]byte("# Title\n===\nbody\n"))
	if a != b {
		t.Errorf("digest not stable: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
}

func TestTracker_Changed(t *testing.T) {
	tr := NewTracker()
	if !tr.Changed("0001_a.md", []byte("one")) {
		t.Error("first observation should count as a change")
	}
	if tr.Changed("0001_a.md", []byte("one")) {
		t.Error("same content should not count as a change")
	}
	if !tr.Changed("0001_a.md", []byte("two")) {
		t.Error("new content should count as a change")
	}
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
}

func TestTracker_Forget(t *testing.T) {
	tr := NewTracker()
	tr.Changed("0001_a.md", []byte("one"))
	if !tr.Forget("0001_a.md") {
		t.Error("Forget should report a tracked name")
	}
	if tr.Forget("0001_a.md") {
		t.Error("second Forget should report false")
	}
	if !tr.Changed("0001_a.md", []byte("one")) {
		t.Error("forgotten name should count as a change")
	}
}

func TestTracker_Known(t *testing.T) {
	tr := NewTracker()
	if tr.Known("0001_a.md") {
		t.Error("empty tracker should not know any name")
	}
	tr.Changed("0001_a.md", []byte("one"))
	if !tr.Known("0001_a.md") {
		t.Error("recorded name should be known")
	}
	tr.Forget("0001_a.md")
	if tr.Known("0001_a.md") {
		t.Error("forgotten name should not be known")
	}
}
