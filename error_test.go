package novelctx_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/novelctx"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := novelctx.Errorf(novelctx.ENOTFOUND, "novel %q not found", "test")

	assert.Equal(t, novelctx.ENOTFOUND, novelctx.ErrorCode(err))
	assert.Equal(t, "novel \"test\" not found", novelctx.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, novelctx.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, novelctx.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, novelctx.EINTERNAL, novelctx.ErrorCode(err))
	assert.Equal(t, "Internal error", novelctx.ErrorMessage(err))
}

func TestWrapErrorf(t *testing.T) {
	t.Parallel()

	t.Run("keeps cause for errors.Is", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		err := novelctx.WrapErrorf(cause, novelctx.ETRANSPORT, "fetch %s", "https://example.com")

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, novelctx.ETRANSPORT, novelctx.ErrorCode(err))
		assert.Equal(t, "fetch https://example.com", novelctx.ErrorMessage(err))
		assert.Equal(t, "fetch https://example.com: connection reset", err.Error())
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		t.Parallel()

		inner := novelctx.Errorf(novelctx.ETIMEOUT, "timed out")
		err := errors.Join(errors.New("outer"), inner)

		assert.Equal(t, novelctx.ETIMEOUT, novelctx.ErrorCode(err))
	})
}

func TestIsFetchError(t *testing.T) {
	t.Parallel()

	assert.True(t, novelctx.IsFetchError(novelctx.Errorf(novelctx.ETIMEOUT, "x")))
	assert.True(t, novelctx.IsFetchError(novelctx.Errorf(novelctx.ETRANSPORT, "x")))
	assert.False(t, novelctx.IsFetchError(novelctx.Errorf(novelctx.ECONTAINER, "x")))
	assert.False(t, novelctx.IsFetchError(nil))
}

func TestIsExtractionError(t *testing.T) {
	t.Parallel()

	assert.True(t, novelctx.IsExtractionError(novelctx.Errorf(novelctx.ECONTAINER, "x")))
	assert.True(t, novelctx.IsExtractionError(novelctx.Errorf(novelctx.EMALFORMED, "x")))
	assert.False(t, novelctx.IsExtractionError(novelctx.Errorf(novelctx.ETIMEOUT, "x")))
}
