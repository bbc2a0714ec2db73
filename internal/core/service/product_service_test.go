package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
)

func TestProductService_Create_RoundsPrice(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, testValidator, discardLogger)

	p, err := svc.Create(context.Background(), ports.ProductInput{Name: "Lamp", Price: 199.2118})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Price != 199.21 {
		t.Fatalf("expected 199.21, got %v", p.Price)
	}

	again, _ := svc.Get(context.Background(), p.ID)
	if again.Price != 199.21 {
		t.Fatalf("expected stored 199.21, got %v", again.Price)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), nil, testValidator, discardLogger)

	for _, in := range []ports.ProductInput{
		{Name: "", Price: 10},
		{Name: "Lamp", Price: 0},
		{Name: "Lamp", Price: -1},
		{Name: "Lamp", Price: 0.004}, // rounds to zero
	} {
		_, err := svc.Create(context.Background(), in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("input %+v: expected validation error, got %v", in, err)
		}
	}
}

func TestProductService_Update_Partial(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, testValidator, discardLogger)
	p, _ := svc.Create(context.Background(), ports.ProductInput{Name: "Lamp", Price: 10, Description: "bright"})

	updated, err := svc.Update(context.Background(), p.ID, ports.ProductPatch{Price: ptr(12.345)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Lamp" || updated.Description != "bright" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.Price != 12.35 {
		t.Errorf("expected rounded 12.35, got %v", updated.Price)
	}
}

func TestProductService_Update_Rejections(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, testValidator, discardLogger)
	p, _ := svc.Create(context.Background(), ports.ProductInput{Name: "Lamp", Price: 10})

	_, err := svc.Update(context.Background(), p.ID, ports.ProductPatch{Name: ptr("")})
	if err == nil || err.Error() != "Validation error: Must have a name." {
		t.Errorf("expected empty name rejection, got %v", err)
	}

	_, err = svc.Update(context.Background(), p.ID, ports.ProductPatch{Price: ptr(0.0)})
	if err == nil || err.Error() != "Validation error: Price must be above zero." {
		t.Errorf("expected price rejection, got %v", err)
	}

	if _, err := svc.Update(context.Background(), "missing", ports.ProductPatch{}); err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), p.ID)
	if stored.Name != "Lamp" || stored.Price != 10 {
		t.Errorf("rejected updates must not be persisted: %+v", stored)
	}
}

func TestProductService_Delete_ReturnsSnapshot(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, testValidator, discardLogger)
	p, _ := svc.Create(context.Background(), ports.ProductInput{Name: "Lamp", Price: 10})

	deleted, err := svc.Delete(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.Name != "Lamp" {
		t.Errorf("unexpected snapshot: %+v", deleted)
	}
	if _, err := svc.Delete(context.Background(), p.ID); err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_List_UsesCache(t *testing.T) {
	repo := newStubProductRepo()
	cache := &stubCache{}
	svc := NewProductService(repo, cache, testValidator, discardLogger)
	_, _ = svc.Create(context.Background(), ports.ProductInput{Name: "Lamp", Price: 10})

	for i := 0; i < 3; i++ {
		list, err := svc.List(context.Background())
		if err != nil || len(list) != 1 {
			t.Fatalf("List: %v %v", list, err)
		}
	}
	if repo.lists != 1 {
		t.Fatalf("expected one repository read, got %d", repo.lists)
	}

	_, _ = svc.Create(context.Background(), ports.ProductInput{Name: "Desk", Price: 99})
	list, _ := svc.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected cache to be invalidated after write, got %d products", len(list))
	}
	if cache.invalidated != 2 {
		t.Errorf("expected 2 invalidations, got %d", cache.invalidated)
	}
}

func TestProductService_List_CacheErrorFallsBack(t *testing.T) {
	repo := newStubProductRepo()
	cache := &stubCache{getErr: errors.New("redis down")}
	svc := NewProductService(repo, cache, testValidator, discardLogger)

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("cache errors must not fail the request: %v", err)
	}
	if repo.lists != 1 {
		t.Errorf("expected repository read, got %d", repo.lists)
	}
}
