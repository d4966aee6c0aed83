package codec

import (
	"route-planner-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateRoundTripKeepsLabels(t *testing.T) {
	wps := []domain.Waypoint{
		{Lat: 10.8, Lng: 106.7, Label: "Nguyen Van A (DH001)"},
		{Lat: 10.81, Lng: 106.71},
	}

	b, err := EncodeState(wps)
	require.NoError(t, err)

	got, err := DecodeState(b)
	require.NoError(t, err)
	require.Equal(t, wps, got)
}

func TestEncodeStateEmptyIsArray(t *testing.T) {
	b, err := EncodeState(nil)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(b))
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	_, err := DecodeState([]byte(`{"lat":1}`))
	require.Error(t, err)
}
