package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/theoryflash/internal/content"
	"github.com/vytor/theoryflash/internal/models"
)

func TestDefault(t *testing.T) {
	b := content.Default()

	q, ok := b.Question("sig-001")
	require.True(t, ok)
	assert.Equal(t, "signs", q.Category)
	assert.Equal(t, "stop", q.SignID)

	_, ok = b.Question("nope")
	assert.False(t, ok)

	assert.Contains(t, b.SignIDs(), "roundabout")
	assert.Contains(t, b.Categories(), "priority")
}

func TestNew_Validation(t *testing.T) {
	signs := []models.Sign{{ID: "stop"}}

	_, err := content.New([]models.Question{{ID: "a"}, {ID: "a"}}, signs)
	assert.ErrorContains(t, err, "duplicate question")

	_, err = content.New([]models.Question{{ID: "a", Options: []string{"x", "y"}, CorrectAnswer: 2}}, signs)
	assert.ErrorContains(t, err, "out of range")

	_, err = content.New([]models.Question{{ID: "a", SignID: "yield"}}, signs)
	assert.ErrorContains(t, err, "unknown sign")

	_, err = content.New(nil, []models.Sign{{ID: "stop"}, {ID: "stop"}})
	assert.ErrorContains(t, err, "duplicate sign")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"questions":[{"id":"x","category":"c","correctAnswer":0}],"signs":[]}`), 0o600))

	b, err := content.Load(path)
	require.NoError(t, err)
	assert.Len(t, b.Questions, 1)

	_, err = content.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	b, err = content.Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Questions)
}
