package content_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/theoryflash/internal/content"
)

const remoteBank = `{
  "signs": [{ "id": "stop", "name": "signs.stop", "category": "regulatory" }],
  "questions": [
    { "id": "r-1", "category": "signs", "difficulty": "easy", "signId": "stop", "options": ["a", "b"], "correctAnswer": 1 }
  ]
}`

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(remoteBank))
	}))
	defer srv.Close()

	b, err := content.NewClient().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	q, ok := b.Question("r-1")
	require.True(t, ok)
	assert.Equal(t, 1, q.CorrectAnswer)
	assert.Equal(t, []string{"stop"}, b.SignIDs())
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "bad status", status: http.StatusNotFound, body: "gone", message: "status 404"},
		{name: "invalid json", status: http.StatusOK, body: "{", message: "decode content bank"},
		{name: "invalid bank", status: http.StatusOK, body: `{"questions":[{"id":"x","options":["a"],"correctAnswer":3}]}`, message: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := content.NewClient().Fetch(context.Background(), srv.URL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

type stubFetcher struct {
	calls int
	url   string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (*content.Bank, error) {
	s.calls++
	s.url = url
	return content.Default(), nil
}

func TestOpen_Dispatch(t *testing.T) {
	f := &stubFetcher{}

	b, err := content.Open(context.Background(), "", f)
	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.Zero(t, f.calls)

	_, err = content.Open(context.Background(), " HTTPS://example.com/bank.json ", f)
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "HTTPS://example.com/bank.json", f.url)

	assert.False(t, content.IsRemote("/srv/bank.json"))
}
