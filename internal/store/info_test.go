package store

import (
	"strings"
	"testing"
)

func TestMasterInfoStoreDefaults(t *testing.T) {
	s := NewMasterInfoStore(6379)

	if got := s.Get("role"); got != "master" {
		t.Errorf("role = %q, want master", got)
	}
	if got := s.Get("connected_slaves"); got != "0" {
		t.Errorf("connected_slaves = %q, want 0", got)
	}
	if got := s.Get("master_repl_offset"); got != "0" {
		t.Errorf("master_repl_offset = %q, want 0", got)
	}
	if len(s.Get("master_replid")) != 40 {
		t.Errorf("master_replid = %q, want 40 hex chars", s.Get("master_replid"))
	}
}

func TestReplicaInfoStoreDefaults(t *testing.T) {
	s := NewReplicaInfoStore(6380, "127.0.0.1", 6379)

	if got := s.Get("role"); got != "slave" {
		t.Errorf("role = %q, want slave", got)
	}
	if got := s.Get("master_host"); got != "127.0.0.1" {
		t.Errorf("master_host = %q, want 127.0.0.1", got)
	}
	if got := s.Get("master_repl_offset"); got != "-1" {
		t.Errorf("master_repl_offset = %q, want -1", got)
	}
}

func TestGetUnknownKeyReturnsSentinel(t *testing.T) {
	s := NewMasterInfoStore(6379)
	if got := s.Get("not_a_real_key"); got != nilSentinel {
		t.Errorf("Get(unknown) = %q, want %q", got, nilSentinel)
	}
}

func TestSnapshotContainsRoleLine(t *testing.T) {
	s := NewMasterInfoStore(6379)
	snap := s.Snapshot("replication")
	if !strings.Contains(snap, "role:master") {
		t.Errorf("snapshot %q does not contain role:master", snap)
	}
}

func TestIncrReplOffsetAccumulates(t *testing.T) {
	s := NewMasterInfoStore(6379)
	s.IncrReplOffset(37)
	s.IncrReplOffset(5)
	if got := s.Get("master_repl_offset"); got != "42" {
		t.Errorf("master_repl_offset = %q, want 42", got)
	}
}
