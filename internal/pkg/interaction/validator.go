package interaction

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

func ValueRequired(value interface{}) error {
	str := cast.ToString(value)
	if len(strings.TrimSpace(str)) == 0 {
		return errors.New("value is required")
	}
	return nil
}

func IntegerRequired(value interface{}) error {
	str := strings.TrimSpace(cast.ToString(value))
	if len(str) == 0 {
		return errors.New("value is required")
	}
	if _, err := strconv.Atoi(str); err != nil {
		return errors.New("value must be an integer")
	}
	return nil
}
