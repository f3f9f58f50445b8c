package pkg

import "github.com/google/uuid"

// GenerateNewRequestID - returns a random id used to correlate log lines of one request.
func GenerateNewRequestID() string {
	return uuid.NewString()
}
