package upstream

import (
	"fmt"
	"strings"
)

const (
	maxHostnameLength = 253
	maxLabelLength    = 63
)

// ValidateInstance sanitizes a user-supplied instance hostname into a base
// URL. The hostname arrives as a path parameter, so anything that could smuggle
// a scheme, port, userinfo or extra path segments into the upstream request
// URL is rejected outright.
func ValidateInstance(hostname string) (string, error) {
	if hostname == "" {
		return "", fmt.Errorf("instance hostname is empty")
	}

	if len(hostname) > maxHostnameLength {
		return "", fmt.Errorf("instance hostname exceeds %d characters", maxHostnameLength)
	}

	if strings.ContainsAny(hostname, "/:@") {
		return "", fmt.Errorf("instance hostname contains forbidden characters")
	}

	for _, label := range strings.Split(hostname, ".") {
		if err := validateLabel(label); err != nil {
			return "", fmt.Errorf("invalid instance hostname %q: %w", hostname, err)
		}
	}

	return "https://" + hostname + "/", nil
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("empty label")
	}

	if len(label) > maxLabelLength {
		return fmt.Errorf("label exceeds %d characters", maxLabelLength)
	}

	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("label starts or ends with a hyphen")
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return fmt.Errorf("label contains invalid character %q", c)
		}
	}

	return nil
}
