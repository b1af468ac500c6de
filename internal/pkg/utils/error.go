package utils

import (
	"fmt"
	"regexp"
	"strings"
)

type MultiError struct {
	prefix string
	errors []string
}

func NewMultiError() *MultiError {
	return &MultiError{}
}

func WrapError(prefix string, err error) *MultiError {
	e := &MultiError{}
	e.SetPrefix(prefix + ":")
	e.Append(err)
	return e
}

func (e *MultiError) Len() int {
	return len(e.errors)
}

func (e *MultiError) SetPrefix(prefix string) {
	e.prefix = prefix
}

func (e *MultiError) Append(err error) {
	if v, ok := err.(*MultiError); ok {
		for _, item := range v.Errors() {
			e.doAppend(item)
		}
	} else {
		e.doAppend(err.Error())
	}
}

func (e *MultiError) AppendRaw(err string) {
	e.errors = append(e.errors, err)
}

func (e *MultiError) AppendSubError(prefix string, err error) {
	// Prefix each line with "-"
	str := regexp.MustCompile(`((^|\n)\s*-*)`).ReplaceAllString(err.Error(), "${2}\t-")
	e.doAppend(fmt.Sprintf("%s:\n%s", prefix, str))
}

func (e *MultiError) Errors() []string {
	return e.errors
}

// ErrorOrNil returns the error if at least one error has been added.
func (e *MultiError) ErrorOrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

func (e *MultiError) Error() string {
	if len(e.errors) == 0 {
		return ""
	}

	msg := strings.Join(e.errors, "\n")
	if e.prefix != "" {
		return e.prefix + "\n" + msg
	}

	return msg
}

func (e *MultiError) doAppend(err string) {
	err = strings.TrimLeft(err, "- ")
	err = fmt.Sprintf("- %s", err)
	e.errors = append(e.errors, err)
}
