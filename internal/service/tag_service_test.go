package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/repository"
)

func TestTagServiceKinds(t *testing.T) {
	env := setupServiceTest(t)
	kinds := env.tags.Kinds()
	want := []string{constants.TaggableCollection, constants.TaggableCustomer, constants.TaggableProduct}
	if len(kinds) != len(want) {
		t.Fatalf("unexpected kinds: %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("unexpected kinds: %v", kinds)
		}
	}
}

func TestTagCreateAndRename(t *testing.T) {
	env := setupServiceTest(t)
	first, err := env.tags.Create(" organic ")
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if first.Label != "organic" {
		t.Fatalf("expected trimmed label, got %q", first.Label)
	}
	if _, err := env.tags.Create("organic"); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected duplicate label rejected, got %v", err)
	}
	second, err := env.tags.Create("vegan")
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if _, err := env.tags.Update(second.ID, "organic"); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected rename conflict, got %v", err)
	}
	if _, err := env.tags.Update(second.ID, "vegan"); err != nil {
		t.Fatalf("rename to same label failed: %v", err)
	}
	tags, total, err := env.tags.List(repository.TagListFilter{Page: 1, PageSize: 10})
	if err != nil || total != 2 || len(tags) != 2 {
		t.Fatalf("unexpected tag list: total=%d err=%v", total, err)
	}
}

func TestTagAttachAndDetach(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Pantry")
	rice := seedTestProduct(t, env.db, collection.ID, "Rice", "3.40")

	if _, err := env.tags.Attach(TaggedItemInput{Label: "staple", ObjectType: "video", ObjectID: rice.ID}); !errors.Is(err, ErrTaggableTypeInvalid) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	if _, err := env.tags.Attach(TaggedItemInput{Label: "staple", ObjectType: "product", ObjectID: rice.ID + 100}); !errors.Is(err, ErrTaggableObjectNotFound) {
		t.Fatalf("expected object not found, got %v", err)
	}
	if _, err := env.tags.Attach(TaggedItemInput{TagID: 999, ObjectType: "product", ObjectID: rice.ID}); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected tag not found, got %v", err)
	}

	item, err := env.tags.Attach(TaggedItemInput{Label: "staple", ObjectType: "Product", ObjectID: rice.ID})
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if item.ObjectType != constants.TaggableProduct || item.Tag == nil || item.Tag.Label != "staple" {
		t.Fatalf("unexpected tagged item: %+v", item)
	}
	if _, err := env.tags.Attach(TaggedItemInput{TagID: item.TagID, ObjectType: "product", ObjectID: rice.ID}); !errors.Is(err, ErrTaggedItemExists) {
		t.Fatalf("expected duplicate attach rejected, got %v", err)
	}

	// 同一标签可打在不同类型对象上
	if _, err := env.tags.Attach(TaggedItemInput{TagID: item.TagID, ObjectType: "collection", ObjectID: collection.ID}); err != nil {
		t.Fatalf("attach to collection failed: %v", err)
	}

	tags, err := env.tags.TagsFor("product", rice.ID)
	if err != nil {
		t.Fatalf("tags for product failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Label != "staple" {
		t.Fatalf("unexpected tags: %+v", tags)
	}

	if err := env.tags.Detach(item.ID); err != nil {
		t.Fatalf("detach failed: %v", err)
	}
	if err := env.tags.Detach(item.ID); !errors.Is(err, ErrTaggedItemNotFound) {
		t.Fatalf("expected tagged item not found, got %v", err)
	}
	items, err := env.tags.ItemsFor("collection", collection.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected collection tag to remain, got %d err=%v", len(items), err)
	}

	if err := env.tags.Delete(item.TagID); err != nil {
		t.Fatalf("delete tag failed: %v", err)
	}
	items, err = env.tags.ItemsFor("collection", collection.ID)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected tagged items removed with tag, got %d err=%v", len(items), err)
	}
}
