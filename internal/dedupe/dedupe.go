package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-mostly queries. Using a centralized singleflight.Group
// ensures that only one database query runs for a given key while other
// callers wait for the result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates concurrent top-trainer queries keyed by the
// requested limit (e.g. "top:10").
var LeaderboardGroup singleflight.Group

// SpeciesGroup deduplicates species catalogue loads (single key "all").
var SpeciesGroup singleflight.Group
