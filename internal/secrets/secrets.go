// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key and the trimmed contents
// are the value.
//
// Known keys: gotenberg-username, gotenberg-password.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is where secrets are read from, relative to the working directory.
const DefaultDir = ".secrets"

const (
	KeyGotenbergUsername = "gotenberg-username"
	KeyGotenbergPassword = "gotenberg-password"
)

// Warnings receives messages about unreadable secret files.
var Warnings io.Writer = os.Stderr

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(Warnings, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// BasicAuth is a username and password pair.
type BasicAuth struct {
	Username string
	Password string
}

// GotenbergAuth returns the Gotenberg credentials among loaded secrets, or
// nil when the username is not set. A username without a password yields an
// empty password.
func GotenbergAuth(s map[string]string) *BasicAuth {
	user, ok := s[KeyGotenbergUsername]
	if !ok {
		return nil
	}
	return &BasicAuth{Username: user, Password: s[KeyGotenbergPassword]}
}
