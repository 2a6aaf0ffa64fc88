package redis

import (
	"fmt"
	"strings"
)

// KeyPrefix namespaces every key written by the application.
const KeyPrefix = "bookweb:"

// Key returns the namespaced Redis key for a local-store key.
func Key(name string) string {
	return KeyPrefix + name
}

// ExtractName strips the namespace from a Redis key.
func ExtractName(key string) (string, error) {
	if !strings.HasPrefix(key, KeyPrefix) || len(key) == len(KeyPrefix) {
		return "", fmt.Errorf("invalid key: %s", key)
	}
	return key[len(KeyPrefix):], nil
}
