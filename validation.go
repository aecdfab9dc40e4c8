package picgen

import (
	"fmt"
	"os"
	"strings"
)

// ValidatePrompt validates a text prompt.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// ValidateOutputPath validates the destination for a generated image.
// The file itself need not exist, but the path must not name a directory.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyOutputPath
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputIsDirectory, path)
	}
	return nil
}

// validateRequest runs all synchronous checks on a generation request and
// resolves the preferred provider, if any. The zero ProviderID is returned
// when no preference was given.
func validateRequest(req *GenerationRequest) (ProviderID, error) {
	if err := ValidatePrompt(req.Prompt); err != nil {
		return "", &ConfigurationError{Err: err}
	}
	if err := ValidateOutputPath(req.OutputPath); err != nil {
		return "", &ConfigurationError{Err: err}
	}

	var preferred ProviderID
	if req.PreferredAPI != "" {
		id, err := ResolveProvider(req.PreferredAPI)
		if err != nil {
			return "", &ConfigurationError{Err: err}
		}
		preferred = id
	}
	return preferred, nil
}
