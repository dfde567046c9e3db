package redis

import "fmt"

// credentialsKey returns the Redis key of the hash holding all credentials
func credentialsKey(prefix string) string {
	return fmt.Sprintf("%s:credentials", prefix)
}
