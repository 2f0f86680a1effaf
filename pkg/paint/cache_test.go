package paint

import "testing"

func textKey(s string) ParagraphCacheKey {
	return ParagraphCacheKey{FontFamily: "Inter", FontSize: 16, Text: s}
}

func TestParagraphCacheEvictsFIFOAt129Keys(t *testing.T) {
	cache := NewParagraphCache(DefaultCacheCapacity)

	for i := 0; i < 129; i++ {
		node := NodeID(i + 1)
		key := textKey(string(rune('a' + i%26)) + string(rune(i)))
		shaped, ok := cache.Utilize(node, key, func(k ParagraphCacheKey) (any, bool) {
			return "shaped:" + k.Text, true
		})
		if !ok || shaped != "shaped:"+key.Text {
			t.Fatalf("utilize %d: got %v, %v", i, shaped, ok)
		}
	}

	if got := cache.Len(); got != DefaultCacheCapacity {
		t.Fatalf("cache length = %d, want %d", got, DefaultCacheCapacity)
	}

	firstKey := textKey(string(rune('a'+0%26)) + string(rune(0)))
	if _, ok := cache.Lookup(firstKey); ok {
		t.Fatalf("expected first-inserted key to be evicted")
	}

	for i := 1; i < 129; i++ {
		key := textKey(string(rune('a'+i%26)) + string(rune(i)))
		if _, ok := cache.Lookup(key); !ok {
			t.Fatalf("key %d should still be retrievable", i)
		}
		if rc := cache.RefCount(key); rc != 1 {
			t.Fatalf("key %d ref count = %d, want 1", i, rc)
		}
	}
}

func TestParagraphCacheUtilizeHitIncrementsRefCount(t *testing.T) {
	cache := NewParagraphCache(4)
	key := textKey("hello")
	shapeCalls := 0
	shape := func(ParagraphCacheKey) (any, bool) { shapeCalls++; return "shaped", true }

	cache.Utilize(1, key, shape)
	cache.Utilize(2, key, shape)

	if shapeCalls != 1 {
		t.Fatalf("shape called %d times, want 1 (second utilize should hit cache)", shapeCalls)
	}
	if rc := cache.RefCount(key); rc != 2 {
		t.Fatalf("ref count = %d, want 2", rc)
	}
}

func TestParagraphCacheUtilizeTransfersRefCountOnRekey(t *testing.T) {
	cache := NewParagraphCache(4)
	keyA := textKey("a")
	keyB := textKey("b")
	shape := func(k ParagraphCacheKey) (any, bool) { return "shaped:" + k.Text, true }

	cache.Utilize(1, keyA, shape)
	if rc := cache.RefCount(keyA); rc != 1 {
		t.Fatalf("keyA ref count = %d, want 1", rc)
	}

	cache.Utilize(1, keyB, shape)
	if rc := cache.RefCount(keyA); rc != 0 {
		t.Fatalf("keyA ref count after rekey = %d, want 0", rc)
	}
	if rc := cache.RefCount(keyB); rc != 1 {
		t.Fatalf("keyB ref count = %d, want 1", rc)
	}
}

func TestParagraphCacheReleaseDropsRefCount(t *testing.T) {
	cache := NewParagraphCache(4)
	key := textKey("hello")
	shape := func(ParagraphCacheKey) (any, bool) { return "shaped", true }

	cache.Utilize(1, key, shape)
	cache.Release(1)

	if rc := cache.RefCount(key); rc != 0 {
		t.Fatalf("ref count after release = %d, want 0", rc)
	}
	if _, ok := cache.Lookup(key); !ok {
		t.Fatalf("entry should remain cached (ref count 0 only makes it eviction-eligible)")
	}
}

func TestParagraphCacheDistinctKeysNeverCollideOnContent(t *testing.T) {
	cache := NewParagraphCache(4)
	keyA := textKey("alpha")
	keyB := textKey("beta")
	shape := func(k ParagraphCacheKey) (any, bool) { return "shaped:" + k.Text, true }

	shapedA, _ := cache.Utilize(1, keyA, shape)
	shapedB, _ := cache.Utilize(2, keyB, shape)

	if shapedA == shapedB {
		t.Fatalf("distinct keys produced the same shaped paragraph")
	}
}
