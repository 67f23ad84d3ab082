package frame

import (
	"sync"
	"testing"
)

func descA() Descriptor {
	return Descriptor{Name: "LOCAL_A", Datum: "custom", Description: "test frame A", RightHanded: true, BaseUnitMeters: 1.0}
}

func descB() Descriptor {
	return Descriptor{Name: "LOCAL_B", Datum: "custom", Description: "test frame B", RightHanded: false, BaseUnitMeters: 0.3048}
}

func TestRegisterIdempotent(t *testing.T) {
	// S8
	r := NewRegistry()
	if err := r.Register(100, descA()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(100, descA()); err != nil {
		t.Fatalf("idempotent re-register should succeed: %v", err)
	}
	if err := r.Register(100, descB()); err == nil {
		t.Fatal("expected FrameConflict for a different descriptor at the same id")
	}
}

func TestGetECEFPreregistered(t *testing.T) {
	r := NewRegistry()
	d, err := r.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if d.Name != "ECEF" || d.Datum != "WGS-84" {
		t.Fatalf("frame 0 should be ECEF/WGS-84, got %+v", d)
	}
}

func TestGetUnregistered(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get(250); err == nil {
		t.Fatal("expected InvalidFrameID for unregistered frame")
	}
}

func TestListSnapshot(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(5, descA())
	_ = r.Register(3, descB())
	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 entries (0, 3, 5), got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatal("List() must be sorted by id")
		}
	}
}

func TestConcurrentReadsDontBlock(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(1, descA())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Get(1); err != nil {
				t.Errorf("concurrent Get failed: %v", err)
			}
			r.Has(0)
			r.List()
		}()
	}
	wg.Wait()
}
