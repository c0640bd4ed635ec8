package utils

import (
	"math/rand"
	"time"
)

func init() {
	// Seed the global random number generator to ensure non-deterministic behavior
	rand.Seed(time.Now().UnixNano())
}

func ContainsString(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}

func UniqueStrings(input []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, val := range input {
		if !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}
	return result
}

func Retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		time.Sleep(delay)
	}
	return err
}

// ShuffleStrings returns a shuffled copy of a string slice.
func ShuffleStrings(input []string) []string {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	shuffled := make([]string, len(input))
	copy(shuffled, input)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func PickRandomString(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[rand.Intn(len(list))]
}

