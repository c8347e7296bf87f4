package form

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	v "github.com/asaskevich/govalidator"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
)

// ValidateStruct runs govalidator struct tags and folds every field
// violation into one ErrBadRequest.
func ValidateStruct(s any) error {
	if _, err := v.ValidateStruct(s); err != nil {
		byField := v.ErrorsByField(err)
		if len(byField) == 0 {
			return fmt.Errorf("%w: %s", gerr.ErrBadRequest, formatErrMsg(err.Error()))
		}
		fields := make([]string, 0, len(byField))
		for f := range byField {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, formatErrMsg(f+": "+byField[f]))
		}
		return fmt.Errorf("%w: %s", gerr.ErrBadRequest, strings.Join(msgs, " "))
	}
	return nil
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, r := range str {
		return string(unicode.ToUpper(r)) + str[i+utf8.RuneLen(r):]
	}
	return ""
}
