package protocol

import "testing"

func TestNewFrameSet(t *testing.T) {
	v, _, err := Parse([]byte("*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	frame, err := NewFrame(v, nil)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	if frame.Command != Set || len(frame.Args) != 2 {
		t.Fatalf("got %+v", frame)
	}
}

func TestNewFrameBadArity(t *testing.T) {
	v, _, err := Parse([]byte("*1\r\n$3\r\nSET\r\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := NewFrame(v, nil); err == nil {
		t.Fatal("expected BadArityError, got nil")
	} else if _, ok := err.(*BadArityError); !ok {
		t.Fatalf("expected BadArityError, got %T", err)
	}
}

func TestNewFrameUnknownCommand(t *testing.T) {
	v, _, err := Parse([]byte("*1\r\n$8\r\nBOGUSCMD\r\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := NewFrame(v, nil); err == nil {
		t.Fatal("expected UnknownCommandError, got nil")
	} else if _, ok := err.(*UnknownCommandError); !ok {
		t.Fatalf("expected UnknownCommandError, got %T", err)
	}
}

func TestLookupCommandCaseInsensitive(t *testing.T) {
	for _, verb := range []string{"GET", "get", "GeT"} {
		if cmd, err := LookupCommand(verb); err != nil || cmd != Get {
			t.Errorf("LookupCommand(%q) = %v, %v; want Get, nil", verb, cmd, err)
		}
	}
}
