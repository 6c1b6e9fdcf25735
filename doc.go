// Package filedemand manages named files and folders under a root directory
// and keeps their content in memory with a per-object caching policy.
//
// Objects are declared once, materialized on disk with their defaults, and
// then read and written by key. Each object has a Mode:
//
//	Static   read from disk once, cached forever, writes rejected
//	Dynamic  cached forever; disk is seeded once, later writes stay in memory
//	Cache    like Dynamic, but cached content expires after a TTL
//	Temp     never cached; every read and write hits the disk
//
// Basic usage:
//
//	reg, _ := filedemand.Open("/var/lib/app", filedemand.WithCacheExpire(time.Minute))
//	defer reg.Close() // flushes in-memory content back to disk
//
//	reg.Add(
//		filedemand.Object{Key: "cfg", Kind: filedemand.File, Name: "config.json",
//			Mode: filedemand.Dynamic, JSON: true, Defaults: map[string]any{"a": 1}},
//		filedemand.Object{Key: "tmp", Kind: filedemand.Folder, Name: "tmp",
//			Mode: filedemand.Cache},
//	)
//	reg.Init(false)
//
//	cfg, _ := reg.Get("cfg")              // map[string]any{"a": 1}
//	reg.Set("cfg", map[string]any{"a": 2}) // memory only until Sync or Close
//	reg.SetAt("tmp", "f.txt", "hi")
//	rc, _ := reg.Stream("tmp", "f.txt")   // read straight from disk
//
// Cached content is evicted lazily: expired entries are swept whenever the
// cache is accessed, not by a background timer.
package filedemand
