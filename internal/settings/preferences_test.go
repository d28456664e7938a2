package settings

import (
	"testing"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewPreferences(t *testing.T) {
	kv := storage.NewMemoryKV()
	repo := storage.NewRepository[ViewPreferences](kv, storage.KeyViewPreferences)

	assert.Equal(t, DefaultViewPreferences(), LoadPreferences(repo))

	prefs := ViewPreferences{Filter: domain.FilterCompleted, Sort: domain.SortAlphabetical}
	require.NoError(t, SavePreferences(repo, prefs))
	assert.Equal(t, prefs, LoadPreferences(repo))

	err := SavePreferences(repo, ViewPreferences{Filter: "done", Sort: domain.SortNewest})
	require.Error(t, err)

	require.NoError(t, kv.Set(storage.KeyViewPreferences, []byte(`{"filter":"x","sort":"newest"}`)))
	assert.Equal(t, DefaultViewPreferences(), LoadPreferences(repo))

	require.NoError(t, kv.Set(storage.KeyViewPreferences, []byte(`[`)))
	assert.Equal(t, DefaultViewPreferences(), LoadPreferences(repo))
}
