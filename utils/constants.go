// File: utils/constants.go
package utils

import "time"

// ProposalCachePrefix is the prefix used for Redis proposal review cache keys.
const ProposalCachePrefix = "proposal:"

// ProposalCacheTTL is the time-to-live for cached proposal views.
const ProposalCacheTTL = 10 * time.Minute

// ScheduleLockPrefix is the prefix for per-(provider, date) run lock keys.
const ScheduleLockPrefix = "schedlock:"

// ScheduleLockTTL bounds how long a crashed run can hold its lock.
const ScheduleLockTTL = 30 * time.Second
