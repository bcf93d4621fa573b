package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber builds a human-referenceable order number:
// HN-<date>-<time>-<4 random digits>.
func GenerateOrderNumber() string {
	now := time.Now().UTC()

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("HN-%s-%04d", now.Format("20060102-150405"), n.Int64())
}
