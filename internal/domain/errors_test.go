package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/explainwell/concept-evaluator/internal/domain"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	t.Parallel()
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrConceptUnknown,
		domain.ErrReferenceNotFound,
		domain.ErrServiceUnavailable,
		domain.ErrInternal,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestSentinelWrapping(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("%w: concept %q", domain.ErrConceptUnknown, "warp_drive")
	assert.ErrorIs(t, err, domain.ErrConceptUnknown)
	assert.NotErrorIs(t, err, domain.ErrReferenceNotFound)
}
