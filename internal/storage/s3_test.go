package storage

import "testing"

func TestS3Storage_PublicURL(t *testing.T) {
	s := NewS3Storage(nil, "fachig-media", "us-east-1", "")
	if got := s.PublicURL("uploads/a.png"); got != "https://fachig-media.s3.us-east-1.amazonaws.com/uploads/a.png" {
		t.Errorf("got %q", got)
	}

	cdn := NewS3Storage(nil, "fachig-media", "us-east-1", "https://cdn.fachig.org/")
	if got := cdn.PublicURL("uploads/a.png"); got != "https://cdn.fachig.org/uploads/a.png" {
		t.Errorf("got %q", got)
	}
}
