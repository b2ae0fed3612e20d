package usecase_test

import (
	"context"
	"testing"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContact(t *testing.T) {
	h := newHarness()

	c, err := h.contacts.Submit(context.Background(), " Asha ", "Asha@Example.com", " Do you run winter treks? ")

	require.NoError(t, err)
	assert.Equal(t, "Asha", c.Name)
	assert.Equal(t, "asha@example.com", c.Email)
	assert.Equal(t, "Do you run winter treks?", c.Message)

	listed, err := h.contacts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, c.ID, listed[0].ID)
}

func TestSubmitContactValidation(t *testing.T) {
	h := newHarness()

	_, err := h.contacts.Submit(context.Background(), "", "not-an-email", "  ")

	appErr := requireKind(t, err, apperror.KindValidation)
	assert.ElementsMatch(t, []string{
		"name is required",
		"email must be a valid email",
		"message is required",
	}, appErr.Fields)
	assert.Empty(t, h.store.contacts)
}

func TestSubmitContactStoreFailure(t *testing.T) {
	h := newHarness()
	h.store.failNextWith = assert.AnError

	_, err := h.contacts.Submit(context.Background(), "Asha", "asha@example.com", "Hello")

	requireKind(t, err, apperror.KindUnexpected)
}
