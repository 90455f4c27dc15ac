package realtime

import (
	"encoding/json"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func Test_Encode_ShouldAddTypeDiscriminator(t *testing.T) {
	data, err := Encode(UserOffline{UserID: 42})
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"user_offline","userId":42}`, string(data))
}

func Test_Encode_WhenActionEmpty_ShouldOmitIt(t *testing.T) {
	data, err := Encode(PresenceUpdate{
		UserID:    1,
		Role:      entities.RoleAdmin,
		Status:    PresenceIdle,
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "action")
	assert.Equal(t, "presence_update", fields["type"])
}

func Test_DecodeServerMessage_ShouldRestoreVariant(t *testing.T) {
	data, err := Encode(ApplicantCreated{
		Applicant: entities.Applicant{ID: 3, FirstName: "Grace"},
		JobID:     8,
		JobTitle:  "SRE",
	})
	require.NoError(t, err)

	msg, err := DecodeServerMessage(data)
	require.NoError(t, err)

	created, ok := msg.(ApplicantCreated)
	require.True(t, ok)
	assert.Equal(t, int64(8), created.JobID)
	assert.Equal(t, "Grace", created.Applicant.FirstName)
}

func Test_DecodeClientMessage_WhenValid_ShouldReturnVariant(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"presence","status":"idle","action":"Reading"}`))
	require.NoError(t, err)
	assert.Equal(t, PresenceMessage{Status: PresenceIdle, Action: "Reading"}, msg)

	msg, err = DecodeClientMessage([]byte(`{"type":"auth","userId":5,"role":"hiring_manager"}`))
	require.NoError(t, err)
	assert.Equal(t, AuthMessage{UserID: 5, Role: entities.RoleHiringManager}, msg)
}

func Test_DecodeClientMessage_WhenInvalid_ShouldFail(t *testing.T) {
	cases := map[string]struct {
		input    string
		expected error
	}{
		"not json":         {`{"type":`, ErrMalformedMessage},
		"missing type":     {`{"userId":1}`, ErrMalformedMessage},
		"unknown type":     {`{"type":"subscribe"}`, ErrUnknownMessageType},
		"server type":      {`{"type":"user_offline","userId":1}`, ErrUnknownMessageType},
		"bad status":       {`{"type":"presence","status":"away"}`, ErrMalformedMessage},
		"bad role":         {`{"type":"auth","userId":1,"role":"owner"}`, ErrMalformedMessage},
		"missing user id":  {`{"type":"auth","role":"admin"}`, ErrMalformedMessage},
		"wrong field type": {`{"type":"auth","userId":"1","role":"admin"}`, ErrMalformedMessage},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeClientMessage([]byte(tc.input))
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
