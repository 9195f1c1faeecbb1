package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"lifestat/domain/core"
)

func TestGetCode_MapsDomainSentinels(t *testing.T) {
	cases := map[error]string{
		core.ErrInsufficientData:    CodeInsufficientData,
		core.ErrMalformedInput:      CodeMalformedInput,
		core.ErrDegenerateStatistic: CodeDegenerate,
		core.ErrNonConvergence:      CodeNonConvergence,
		core.ErrUnknownMethod:       CodeNotFound,
		fmt.Errorf("boom"):          CodeInternalError,
	}
	for err, want := range cases {
		wrapped := fmt.Errorf("%w: context", err)
		assert.Equal(t, want, GetCode(wrapped), "error %v", err)
	}
	assert.Equal(t, "", GetCode(nil))
}

func TestWrap_PreservesCodeAndCause(t *testing.T) {
	base := fmt.Errorf("%w: only 2 events", core.ErrInsufficientData)
	err := Wrap(base, "fit failed")

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeInsufficientData, GetCode(err))
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	assert.Equal(t, "fit failed: insufficient data for analysis: only 2 events", err.Error())

	outer := Wrapf(ConfigInvalid("PORT is empty"), "load %s", "server")
	assert.Equal(t, CodeConfigInvalid, GetCode(outer))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestFromDomain(t *testing.T) {
	assert.Nil(t, FromDomain(nil))

	appErr := FromDomain(fmt.Errorf("%w: 1 value", core.ErrInsufficientData))
	assert.Equal(t, CodeInsufficientData, appErr.Code)
	assert.ErrorIs(t, appErr, core.ErrInsufficientData)

	existing := InvalidInput("bad body")
	assert.Same(t, existing, FromDomain(fmt.Errorf("decode: %w", existing)))
}
