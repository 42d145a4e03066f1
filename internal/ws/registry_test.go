package ws

import (
	"testing"

	"github.com/google/uuid"
)

func TestRegistryRegister_LastWriteWins(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()

	r.Register(user, "conn-1")
	r.Register(user, "conn-2")

	connID, ok := r.Lookup(user)
	if !ok || connID != "conn-2" {
		t.Fatalf("Lookup = (%q, %v), want (%q, true)", connID, ok, "conn-2")
	}
}

func TestRegistryUnregister_StaleConnection(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()

	r.Register(user, "conn-1")
	r.Register(user, "conn-2")

	// The late disconnect of the replaced connection must not evict the
	// newer mapping.
	r.Unregister("conn-1")

	connID, ok := r.Lookup(user)
	if !ok || connID != "conn-2" {
		t.Fatalf("Lookup after stale unregister = (%q, %v), want (%q, true)", connID, ok, "conn-2")
	}

	r.Unregister("conn-2")
	if _, ok := r.Lookup(user); ok {
		t.Fatalf("Lookup after live unregister reports the user present")
	}
}

func TestRegistryUnregister_UnknownConnection(t *testing.T) {
	r := NewRegistry()
	user := uuid.New()
	r.Register(user, "conn-1")

	r.Unregister("never-registered")

	if connID, ok := r.Lookup(user); !ok || connID != "conn-1" {
		t.Fatalf("Lookup = (%q, %v), want (%q, true)", connID, ok, "conn-1")
	}
}

func TestRegistryLookup_Absent(t *testing.T) {
	r := NewRegistry()

	if connID, ok := r.Lookup(uuid.New()); ok {
		t.Fatalf("Lookup of unknown user = (%q, true), want absent", connID)
	}
}
