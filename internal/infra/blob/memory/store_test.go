package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"wellcore/internal/blob/core"
)

func TestPutGetHeadDeleteList(t *testing.T) {
	s := New()
	ctx := context.Background()

	info, err := s.Put(ctx, "reports/P1/a.json", strings.NewReader(`{"well":"P1"}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"well": "P1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 13 || info.ContentType != "application/json" {
		t.Fatalf("unexpected info %+v", info)
	}

	got, rc, err := s.Get(ctx, "reports/P1/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil || string(body) != `{"well":"P1"}` {
		t.Fatalf("unexpected body %q err %v", body, err)
	}
	if got.Metadata["well"] != "P1" {
		t.Fatalf("unexpected metadata %v", got.Metadata)
	}

	if _, err := s.Head(ctx, "reports/P1/a.json"); err != nil {
		t.Fatalf("head: %v", err)
	}
	if _, err := s.Head(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.Put(ctx, "reports/P2/b.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	infos, err := s.List(ctx, "reports/P1/")
	if err != nil || len(infos) != 1 || infos[0].Key != "reports/P1/a.json" {
		t.Fatalf("unexpected list %v err %v", infos, err)
	}
	all, err := s.List(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 blobs, got %v err %v", all, err)
	}
	if all[0].Key > all[1].Key {
		t.Fatalf("list must be key ordered: %v", all)
	}

	ok, err := s.Delete(ctx, "reports/P1/a.json")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete(ctx, "reports/P1/a.json")
	if err != nil || ok {
		t.Fatalf("second delete must report missing: ok=%v err=%v", ok, err)
	}
}

func TestPutIsCreateOnly(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.Put(ctx, "k", strings.NewReader("a"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "k", strings.NewReader("b"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestDriver(t *testing.T) {
	if New().Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver")
	}
}
