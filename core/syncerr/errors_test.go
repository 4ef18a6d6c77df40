package syncerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := Wrap(KindFieldTransform, "date parse failed", errors.New("bad month")).
		WithField("startDateTime").
		WithRecord("2869")

	msg := err.Error()
	assert.Contains(t, msg, "field_transform")
	assert.Contains(t, msg, `field "startDateTime"`)
	assert.Contains(t, msg, `record "2869"`)
	assert.Contains(t, msg, "bad month")
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := New(KindValidation, "no usable date")
	wrapped := fmt.Errorf("sync failed: %w", inner)

	assert.Equal(t, KindValidation, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(wrapped, KindNotFound))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, KindSetup))
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSetup, "setup"},
		{KindNotFound, "not_found"},
		{KindFieldMapping, "field_mapping"},
		{KindFieldTransform, "field_transform"},
		{KindValidation, "validation"},
		{KindMediaFetch, "media_fetch"},
		{KindRequest, "request"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}
