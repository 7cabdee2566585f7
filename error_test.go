package webscrape_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/webscrape"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webscrape.Errorf(webscrape.EINVALID, "invalid URL %q", "::")

	assert.Equal(t, webscrape.EINVALID, webscrape.ErrorCode(err))
	assert.Equal(t, "invalid URL \"::\"", webscrape.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("setup: %w", webscrape.Errorf(webscrape.EUNAVAILABLE, "output directory not writable"))

	assert.Equal(t, webscrape.EUNAVAILABLE, webscrape.ErrorCode(err))
	assert.Equal(t, "output directory not writable", webscrape.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, webscrape.EINTERNAL, webscrape.ErrorCode(err))
	assert.Equal(t, "Internal error.", webscrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webscrape.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webscrape.ErrorMessage(nil))
}
