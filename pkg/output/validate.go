package output

import (
	"fmt"

	"github.com/targetplan/daily-breakdown/pkg/constants"
)

// ValidateFormat checks that the requested output format is supported.
func ValidateFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX:
		return nil
	}
	return fmt.Errorf("invalid output format %q: must be one of %s, %s, %s",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX)
}
