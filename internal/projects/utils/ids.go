package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const projectIDPrefix = "proj"

// NewProjectID returns a short, readable primary key for a projetos row,
// e.g. "proj-48213-0711". Collisions are possible; callers retry on a
// unique violation.
func NewProjectID() (string, error) {
	return newTextID(projectIDPrefix)
}

func newTextID(prefix string) (string, error) {
	a, err := randInt(10000, 99999)
	if err != nil {
		return "", err
	}
	b, err := randInt(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d-%04d", prefix, a, b), nil
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
