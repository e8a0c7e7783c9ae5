package gpubackend

import "testing"

func TestGetReturnsRegisteredSoftwareBackend(t *testing.T) {
	b, err := Get("software")
	if err != nil {
		t.Fatalf("Get(software) failed: %v", err)
	}
	if b.Name() != "software" {
		t.Fatalf("Name() = %q, want software", b.Name())
	}
}

func TestGetUnknownBackendErrors(t *testing.T) {
	if _, err := Get("nonexistent"); err == nil {
		t.Fatalf("expected an error for an unregistered backend name")
	}
}

func TestSoftwareBufferLifecycle(t *testing.T) {
	b := NewSoftware()
	released := false
	h := b.CreateBuffer([]byte{1, 2, 3}, func() { released = true })
	if h == InvalidHandle {
		t.Fatalf("CreateBuffer should return a valid handle")
	}
	if !released {
		t.Fatalf("release callback should be invoked once the backend consumes the data")
	}
	b.DestroyBuffer(h)
}

func TestSoftwareSubmitRecordsDraw(t *testing.T) {
	b := NewSoftware()
	b.BeginFrame(Viewport{Width: 800, Height: 600})
	vb := b.CreateBuffer([]byte{0}, nil)
	ib := b.CreateBuffer([]byte{0}, nil)
	b.Submit(1, vb, ib, InvalidHandle, 0, 6)
	if len(b.Draws) != 1 {
		t.Fatalf("expected exactly one recorded draw, got %d", len(b.Draws))
	}
	if b.Draws[0].NumIndices != 6 {
		t.Fatalf("NumIndices = %d, want 6", b.Draws[0].NumIndices)
	}
}

func TestSoftwareBeginFrameClearsPriorDraws(t *testing.T) {
	b := NewSoftware()
	b.Submit(1, 0, 0, InvalidHandle, 0, 3)
	b.BeginFrame(Viewport{})
	if len(b.Draws) != 0 {
		t.Fatalf("BeginFrame should clear the previous frame's draw list")
	}
}

func TestGoGPUInitFailsWithoutDeviceHandle(t *testing.T) {
	b := NewGoGPU()
	if err := b.Init(); err == nil {
		t.Fatalf("Init should fail when no device handle was attached")
	}
}
