package pipeline

import "time"

// nowFunc is swapped out in tests to pin sample timestamps.
var nowFunc = time.Now
