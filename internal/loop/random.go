package loop

import (
	"math/rand"
	"time"

	"github.com/san-kum/garland/internal/garland"
)

func newRandom(seed time.Time) garland.Random {
	return rand.New(rand.NewSource(seed.UnixNano()))
}
