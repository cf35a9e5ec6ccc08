/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"strings"
)

const (
	modeHTTP = "http"
	modeBot  = "bot"
)

// parseModes converts the -mode flag (e.g. "http,bot") into a set of hosts to run
// Returns an error for unknown hosts or when no host is selected
func parseModes(str string) (map[string]bool, error) {
	modes := make(map[string]bool)
	for _, part := range strings.Split(str, ",") {
		mode := strings.ToLower(strings.TrimSpace(part))
		switch mode {
		case "":
			continue
		case modeHTTP, modeBot:
			modes[mode] = true
		default:
			return nil, fmt.Errorf("invalid mode %q, expected http or bot", mode)
		}
	}
	if len(modes) == 0 {
		return nil, fmt.Errorf("at least one mode is required")
	}
	return modes, nil
}
