package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelay_Send(t *testing.T) {
	var got Values
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Thanks, talk soon"}`))
	}))
	defer ts.Close()

	r := NewRelay(ts.URL, time.Second)
	msg, err := r.Send(context.Background(), validValues)
	require.NoError(t, err)
	assert.Equal(t, "Thanks, talk soon", msg)
	assert.Equal(t, validValues, got)
	assert.Equal(t, 1, calls)
}

func TestRelay_SendWireFormat(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"name": "Zach", "email": "zach@example.com", "subject": "Hello",
			"message": "Let's build something"}, body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	msg, err := NewRelay(ts.URL, time.Second).Send(context.Background(), validValues)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestRelay_SendRejected(t *testing.T) {
	tbl := []struct {
		name   string
		status int
		body   string
		msg    string
	}{
		{"message field", http.StatusUnprocessableEntity, `{"message":"Spam detected"}`, "Spam detected"},
		{"error field", http.StatusBadRequest, `{"error":"form not found"}`, "form not found"},
		{"no body", http.StatusInternalServerError, ``, ""},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"redirect", http.StatusMultipleChoices, `{"message":"moved"}`, "moved"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := NewRelay(ts.URL, time.Second).Send(context.Background(), validValues)
			var re *RelayError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.status, re.StatusCode)
			assert.Equal(t, tt.msg, re.Message)
			assert.NoError(t, re.Err)
		})
	}
}

func TestRelay_SendNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewRelay(url, time.Second).Send(context.Background(), validValues)
	var re *RelayError
	require.ErrorAs(t, err, &re)
	assert.Error(t, re.Err)
	assert.Zero(t, re.StatusCode)
}

func TestRelay_SendCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRelay("http://127.0.0.1:1", time.Second).Send(ctx, validValues)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRelayError_Error(t *testing.T) {
	assert.Equal(t, "relay responded 500", (&RelayError{StatusCode: 500}).Error())
	assert.Equal(t, "relay responded 422: bad", (&RelayError{StatusCode: 422, Message: "bad"}).Error())
	assert.Contains(t, (&RelayError{Err: errors.New("refused")}).Error(), "refused")
}
