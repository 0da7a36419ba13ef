package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bong/internal/source"
	"bong/internal/value"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.bong", []byte("{a: [1, 2.5]}")))
	tree := value.Object{"a": value.Array{value.Int(1), value.Float(2.5)}, "n": value.Null{}}

	if _, ok, err := cache.LoadValue(file, Options{}); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := cache.StoreValue(file, Options{}, tree); err != nil {
		t.Fatalf("StoreValue: %v", err)
	}
	got, ok, err := cache.LoadValue(file, Options{})
	if err != nil || !ok {
		t.Fatalf("LoadValue: ok=%v err=%v", ok, err)
	}
	if !value.Equal(got, tree) {
		t.Fatalf("cached tree = %#v", got)
	}

	// другие опции парсера дают другой ключ
	if _, ok, _ := cache.LoadValue(file, Options{NormalizeKeys: true}); ok {
		t.Fatal("NormalizeKeys must change the cache key")
	}
	if CacheKey(file, Options{MaxDepth: 3}) == CacheKey(file, Options{}) {
		t.Fatal("MaxDepth must change the cache key")
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	var key Digest
	key[0] = 1
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
}

func TestParseDirUsesCache(t *testing.T) {
	dir := setupDir(t)
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	opts := Options{Cache: cache}

	_, first, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	_, second, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	for i := range first {
		if first[i].Cached {
			t.Fatalf("%s cached on first run", first[i].Path)
		}
		// ошибки не кэшируются
		wantCached := !first[i].Failed()
		if second[i].Cached != wantCached {
			t.Fatalf("%s: cached = %v, want %v", second[i].Path, second[i].Cached, wantCached)
		}
		if !value.Equal(first[i].Value, second[i].Value) {
			t.Fatalf("%s: cached value differs", first[i].Path)
		}
	}
	if second[1].Bag.Len() != 1 {
		t.Fatalf("failed file lost its diagnostic on rerun: %+v", second[1].Bag.Items())
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenDiskCache(dir)
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	var key Digest
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var out DiskPayload
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatal("entry survived DropAll")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("cache dir not recreated: %v", err)
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.bong", []byte("1")))
	if err := cache.StoreValue(file, Options{}, value.Int(1)); err != nil {
		t.Fatalf("StoreValue on nil cache: %v", err)
	}
	if _, ok, err := cache.LoadValue(file, Options{}); ok || err != nil {
		t.Fatalf("LoadValue on nil cache: ok=%v err=%v", ok, err)
	}
}
