package main

import (
	"errors"
	"testing"
)

func poolParams() KernelParams {
	return KernelParams{
		Width:   80,
		Height:  60,
		OffsetX: DefaultOffsetX,
		OffsetY: DefaultOffsetY,
		Zoom:    DefaultZoom,
		MaxIter: 200,
	}
}

func TestPoolBackend_DispatchRetrieve(t *testing.T) {
	pb := NewPoolBackend(4)
	defer pb.Close()

	params := poolParams()
	buf, err := pb.Dispatch(params)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	iters, err := pb.Retrieve(buf)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(iters) != params.Width*params.Height {
		t.Fatalf("expected %d counts, got %d", params.Width*params.Height, len(iters))
	}
	for i, iter := range iters {
		if iter < 0 || iter > params.MaxIter {
			t.Fatalf("count %d at index %d out of [0,%d]", iter, i, params.MaxIter)
		}
	}
}

func TestPoolBackend_MatchesSerialKernel(t *testing.T) {
	pb := NewPoolBackend(8)
	defer pb.Close()

	params := poolParams()
	buf, err := pb.Dispatch(params)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	iters, err := pb.Retrieve(buf)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	for y := 0; y < params.Height; y++ {
		for x := 0; x < params.Width; x++ {
			want := kernelPixel(x, y, params)
			if got := iters[y*params.Width+x]; got != want {
				t.Fatalf("pixel (%d,%d): pool %d, serial %d", x, y, got, want)
			}
		}
	}
}

func TestPoolBackend_SingleWorkerMatchesMany(t *testing.T) {
	one := NewPoolBackend(1)
	defer one.Close()
	many := NewPoolBackend(16)
	defer many.Close()

	params := poolParams()
	bufOne, err := one.Dispatch(params)
	if err != nil {
		t.Fatalf("Dispatch(1 worker): %v", err)
	}
	bufMany, err := many.Dispatch(params)
	if err != nil {
		t.Fatalf("Dispatch(16 workers): %v", err)
	}
	a, err := one.Retrieve(bufOne)
	if err != nil {
		t.Fatalf("Retrieve(1 worker): %v", err)
	}
	b, err := many.Retrieve(bufMany)
	if err != nil {
		t.Fatalf("Retrieve(16 workers): %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: 1-worker %d, 16-worker %d", i, a[i], b[i])
		}
	}
}

func TestPoolBackend_RetrieveTwiceFails(t *testing.T) {
	pb := NewPoolBackend(2)
	defer pb.Close()

	buf, err := pb.Dispatch(poolParams())
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if _, err := pb.Retrieve(buf); err != nil {
		t.Fatalf("first Retrieve returned error: %v", err)
	}
	_, err = pb.Retrieve(buf)
	if err == nil {
		t.Fatal("second Retrieve should fail")
	}
	var ce *ComputeError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ComputeError, got %T", err)
	}
}

func TestPoolBackend_InvalidParamsRejected(t *testing.T) {
	pb := NewPoolBackend(2)
	defer pb.Close()

	cases := []KernelParams{
		{Width: 0, Height: 60, Zoom: 1, MaxIter: 100},
		{Width: 80, Height: -1, Zoom: 1, MaxIter: 100},
		{Width: 80, Height: 60, Zoom: 1, MaxIter: 0},
		{Width: 80, Height: 60, Zoom: 0, MaxIter: 100},
	}
	for i, params := range cases {
		if _, err := pb.Dispatch(params); err == nil {
			t.Errorf("case %d: expected dispatch error", i)
		}
	}
}

func TestPoolBackend_ClosedBackendRejectsWork(t *testing.T) {
	pb := NewPoolBackend(2)
	buf, err := pb.Dispatch(poolParams())
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if err := pb.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := pb.Dispatch(poolParams()); err == nil {
		t.Error("Dispatch after Close should fail")
	}
	if _, err := pb.Retrieve(buf); err == nil {
		t.Error("Retrieve after Close should fail")
	}
}

func TestNewComputeBackend_VulkanUnsupported(t *testing.T) {
	_, err := NewComputeBackend(COMPUTE_BACKEND_VULKAN)
	if err == nil {
		t.Fatal("expected error for Vulkan backend")
	}
	var ce *ComputeError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ComputeError, got %T", err)
	}
}

func TestNewComputeBackend_UnknownType(t *testing.T) {
	if _, err := NewComputeBackend(99); err == nil {
		t.Fatal("expected error for unknown backend type")
	}
}
