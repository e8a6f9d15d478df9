package utils

import (
	"os/user"
)

// GetUsername returns the login name of the person running storyvault.
// It is recorded as the user of each audit log entry.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}
