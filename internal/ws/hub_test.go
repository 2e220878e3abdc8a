package ws

import "testing"

func TestHubAddAndRemoveClient(t *testing.T) {
	hub := NewHub()

	hub.AddClient(1, nil)
	if len(hub.publicRoom) != 1 {
		t.Fatalf("expected client in public room")
	}
	if len(hub.userRooms) != 1 {
		t.Fatalf("expected user room to be created")
	}

	hub.RemoveClient(1, nil)
	if len(hub.publicRoom) != 0 {
		t.Fatalf("expected public room to be empty")
	}
	if len(hub.userRooms) != 0 {
		t.Fatalf("expected user room to be removed")
	}
}

func TestHubSecondConnectionKeepsRoom(t *testing.T) {
	hub := NewHub()

	hub.AddClient(1, nil)
	hub.AddClient(2, nil)

	// Same nil conn joins both user rooms; removing one user's entry must
	// not touch the other room.
	hub.RemoveClient(1, nil)
	if len(hub.userRooms) != 1 {
		t.Fatalf("expected one user room to remain")
	}
}
